//go:build unit

package jsonfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories/jsonfile"
)

func TestAnalysisRepositoryWriteAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("should write one document named after the dependency", func(t *testing.T) {
		t.Parallel()

		// given
		dir := filepath.Join(t.TempDir(), ".dependabot", "analysis")
		repo := jsonfile.NewAnalysisRepository()
		result := entities.AnalysisResult{
			UpdatedVersion: "2.0.0",
			CanUpdate:      true,
			UpdatedDependencies: []entities.Dependency{
				{Name: "PackageA", Version: "2.0.0", Type: entities.DependencyTypeUnknown, InfoURL: "https://example.com"},
			},
		}

		// when
		path, err := repo.WriteAnalysis(dir, "PackageA", result)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "PackageA.json"), path)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{
			"UpdatedVersion": "2.0.0",
			"CanUpdate": true,
			"VersionComesFromMultiDependencyProperty": false,
			"UpdatedDependencies": [
				{"Name": "PackageA", "Version": "2.0.0", "Type": "Unknown",
				 "IsDirect": false, "IsTransitive": false, "InfoUrl": "https://example.com"}
			]
		}`, string(data))
	})

	t.Run("should write an empty peer list rather than null", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo := jsonfile.NewAnalysisRepository()

		// when
		path, err := repo.WriteAnalysis(dir, "PackageA", entities.AnalysisResult{UpdatedVersion: "1.0.0"})

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `"UpdatedDependencies": []`)
	})

	t.Run("should produce identical bytes for identical results", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo := jsonfile.NewAnalysisRepository()
		result := entities.NoUpdate("1.0.0", true)

		// when
		path, firstErr := repo.WriteAnalysis(dir, "PackageA", result)
		first, _ := os.ReadFile(path)
		_, secondErr := repo.WriteAnalysis(dir, "PackageA", result)
		second, _ := os.ReadFile(path)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Equal(t, first, second)
		entries, _ := os.ReadDir(dir)
		assert.Len(t, entries, 1)
	})
}
