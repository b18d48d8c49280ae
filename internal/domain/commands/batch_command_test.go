//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depanalyzer/internal/domain/commands"
	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	builders "github.com/rios0rios0/depanalyzer/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/depanalyzer/test/infrastructure/repositorydoubles"
)

func dependencyDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600))
	}
	return dir
}

func TestBatchCommandExecute(t *testing.T) {
	t.Parallel()

	discovery := singleProjectWorkspace(
		builders.NewDependencyBuilder().WithName("PackageA").WithVersion("1.0.0").BuildDependency(),
		builders.NewDependencyBuilder().WithName("PackageB").WithVersion("2.0.0").BuildDependency(),
	)
	settings := &entities.Settings{Feed: "nuget", Concurrency: 2}

	t.Run("should analyze every dependency document", func(t *testing.T) {
		t.Parallel()

		// given
		dir := dependencyDir(t, "a.json", "b.json", "notes.txt")
		feed := &doubles.SpyPackageFeedRepository{Versions: map[string][]string{
			"PackageA": {"1.1.0"},
			"PackageB": {"2.1.0"},
		}}
		discoveryRepo := &doubles.StubDiscoveryRepository{
			Discovery: &discovery,
			Infos: map[string]*entities.DependencyInfo{
				filepath.Join(dir, "a.json"): {Name: "PackageA", Version: "1.0.0"},
				filepath.Join(dir, "b.json"): {Name: "PackageB", Version: "2.0.0"},
			},
		}
		analysisRepo := &doubles.SpyAnalysisRepository{}
		cmd := commands.NewBatchCommand(registryWith(feed), discoveryRepo, analysisRepo)

		// when
		err := cmd.Execute(context.Background(), settings, commands.BatchOptions{
			RepoRoot:        "/repo",
			DiscoveryFile:   "discovery.json",
			DependenciesDir: dir,
			AnalysisFolder:  "/out",
		})

		// then
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"PackageA", "PackageB"}, analysisRepo.WrittenNames())
		assert.Len(t, discoveryRepo.InfoPaths, 2)
	})

	t.Run("should keep going and report failures", func(t *testing.T) {
		t.Parallel()

		// given
		dir := dependencyDir(t, "a.json", "broken.json")
		feed := &doubles.SpyPackageFeedRepository{Versions: map[string][]string{"PackageA": {"1.1.0"}}}
		discoveryRepo := &doubles.StubDiscoveryRepository{
			Discovery: &discovery,
			Infos: map[string]*entities.DependencyInfo{
				filepath.Join(dir, "a.json"): {Name: "PackageA", Version: "1.0.0"},
			},
		}
		analysisRepo := &doubles.SpyAnalysisRepository{}
		cmd := commands.NewBatchCommand(registryWith(feed), discoveryRepo, analysisRepo)

		// when
		err := cmd.Execute(context.Background(), settings, commands.BatchOptions{
			DiscoveryFile:   "discovery.json",
			DependenciesDir: dir,
			AnalysisFolder:  "/out",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 analyses failed")
		assert.Equal(t, []string{"PackageA"}, analysisRepo.WrittenNames())
	})

	t.Run("should do nothing for an empty directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := dependencyDir(t)
		discoveryRepo := &doubles.StubDiscoveryRepository{Discovery: &discovery}
		analysisRepo := &doubles.SpyAnalysisRepository{}
		cmd := commands.NewBatchCommand(registryWith(&doubles.SpyPackageFeedRepository{}), discoveryRepo, analysisRepo)

		// when
		err := cmd.Execute(context.Background(), settings, commands.BatchOptions{
			DiscoveryFile:   "discovery.json",
			DependenciesDir: dir,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, analysisRepo.Writes)
	})

	t.Run("should fail when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		discoveryRepo := &doubles.StubDiscoveryRepository{Discovery: &discovery}
		cmd := commands.NewBatchCommand(
			registryWith(&doubles.SpyPackageFeedRepository{}), discoveryRepo, &doubles.SpyAnalysisRepository{},
		)

		// when
		err := cmd.Execute(context.Background(), settings, commands.BatchOptions{
			DiscoveryFile:   "discovery.json",
			DependenciesDir: filepath.Join(t.TempDir(), "missing"),
		})

		// then
		require.Error(t, err)
	})
}
