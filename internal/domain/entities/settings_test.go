//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should parse a YAML config and apply defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "depanalyzer.yaml", `
source: https://pkgs.example.com/v3/index.json
retry_max: 5
concurrency: 2
cache_dir: /tmp/depanalyzer-cache
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultFeed, settings.Feed)
		assert.Equal(t, "https://pkgs.example.com/v3/index.json", settings.Source)
		assert.Equal(t, 5, settings.RetryMax)
		assert.Equal(t, 2, settings.Concurrency)
		assert.Equal(t, "/tmp/depanalyzer-cache", settings.CacheDir)
		assert.Equal(t, entities.DefaultTimeout, settings.RequestTimeout())
	})

	t.Run("should parse an HCL config using env()", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("DEPANALYZER_TEST_FEED_TOKEN", "hcl-secret")
		path := writeConfig(t, "depanalyzer.hcl", `
source  = "https://pkgs.example.com/v3/index.json"
token   = env("DEPANALYZER_TEST_FEED_TOKEN")
timeout = "10s"
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "hcl-secret", settings.Token)
		assert.Equal(t, 10*time.Second, settings.RequestTimeout())
		assert.Equal(t, entities.DefaultRetryMax, settings.RetryMax)
	})

	t.Run("should reject a non-HTTP source", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "depanalyzer.yaml", "source: ftp://pkgs.example.com\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
	})

	t.Run("should reject an invalid timeout", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "depanalyzer.yaml", "timeout: soon\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("should load the explicit config file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "custom.yml", "concurrency: 8\n")

		// when
		settings, err := entities.LoadSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 8, settings.Concurrency)
	})

	t.Run("should return usable defaults", func(t *testing.T) {
		t.Parallel()

		// given / when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, entities.DefaultSource, settings.Source)
		assert.Equal(t, entities.DefaultConcurrency, settings.Concurrency)
		assert.NotEmpty(t, settings.CacheDir)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// given
		raw := ""

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "oy2abc123xyz"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "oy2abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("DEPANALYZER_TEST_TOKEN", "my-secret-token")
		raw := "${DEPANALYZER_TEST_TOKEN}"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should read token from file path", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "token.txt", "  file-token\n")

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-token", result)
	})
}
