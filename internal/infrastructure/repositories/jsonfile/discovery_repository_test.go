//go:build unit

package jsonfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
	"github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories/jsonfile"
)

const discoveryDocument = `{
  "Path": "src",
  "IsSuccess": true,
  "Projects": [
    {
      "FilePath": "src/App/App.csproj",
      "TargetFrameworks": ["net8.0"],
      "Dependencies": [
        {
          "Name": "PackageA",
          "Version": "1.0.0",
          "Type": "PackageReference",
          "IsDirect": true,
          "IsTransitive": false,
          "EvaluationResult": {
            "ResultType": "Success",
            "OriginalValue": "$(SharedVer)",
            "EvaluatedValue": "1.0.0",
            "RootPropertyName": "SharedVer"
          },
          "TargetFrameworks": ["net8.0"]
        }
      ]
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDiscoveryRepositoryReadDiscovery(t *testing.T) {
	t.Parallel()

	t.Run("should parse the discovery document", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "discovery.json", discoveryDocument)
		repo := jsonfile.NewDiscoveryRepository()

		// when
		discovery, err := repo.ReadDiscovery(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "src", discovery.Path)
		require.Len(t, discovery.Projects, 1)
		require.Len(t, discovery.Projects[0].Dependencies, 1)
		assert.Equal(t, "SharedVer", discovery.Projects[0].Dependencies[0].RootPropertyName())
	})

	t.Run("should report a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.json")
		repo := jsonfile.NewDiscoveryRepository()

		// when
		_, err := repo.ReadDiscovery(path)

		// then
		require.ErrorIs(t, err, repositories.ErrInputNotFound)
	})

	t.Run("should report an empty file distinctly", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "discovery.json", "  \n")
		repo := jsonfile.NewDiscoveryRepository()

		// when
		_, err := repo.ReadDiscovery(path)

		// then
		require.ErrorIs(t, err, repositories.ErrInputEmpty)
		assert.NotErrorIs(t, err, repositories.ErrInputNotFound)
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "discovery.json", "{\"Path\":")
		repo := jsonfile.NewDiscoveryRepository()

		// when
		_, err := repo.ReadDiscovery(path)

		// then
		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrInputEmpty)
	})
}

func TestDiscoveryRepositoryReadDependencyInfo(t *testing.T) {
	t.Parallel()

	t.Run("should parse the dependency document", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "dependency.json",
			`{"Name":"PackageA","Version":"1.0.0","IsVulnerable":true,"IgnoredVersions":["2.0.0"]}`)
		repo := jsonfile.NewDiscoveryRepository()

		// when
		info, err := repo.ReadDependencyInfo(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "PackageA", info.Name)
		assert.True(t, info.IsVulnerable)
		assert.Equal(t, []string{"2.0.0"}, info.IgnoredVersions)
	})

	t.Run("should reject a document without a name", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "dependency.json", `{"Version":"1.0.0"}`)
		repo := jsonfile.NewDiscoveryRepository()

		// when
		info, err := repo.ReadDependencyInfo(path)

		// then
		require.Error(t, err)
		assert.Nil(t, info)
	})
}
