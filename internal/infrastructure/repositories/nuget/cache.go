package nuget

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	cacheDirMode  = 0o755
	cacheFileMode = 0o644
	memoryEntries = 1024
)

// metadataCache keeps package metadata in memory and, for immutable
// manifests, on disk. The disk layout is keyed by package id and version so
// concurrent runs writing the same entry write the same bytes.
type metadataCache struct {
	dir      string
	memory   *lru.Cache[string, []byte]
	versions *lru.Cache[string, []string]
}

func newMetadataCache(dir string) (*metadataCache, error) {
	memory, err := lru.New[string, []byte](memoryEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata cache: %w", err)
	}
	versions, err := lru.New[string, []string](memoryEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata cache: %w", err)
	}
	return &metadataCache{dir: dir, memory: memory, versions: versions}, nil
}

// Version lists change as packages are published, so they stay in memory only.
func (c *metadataCache) getVersions(id string) ([]string, bool) {
	return c.versions.Get(strings.ToLower(id))
}

func (c *metadataCache) putVersions(id string, versions []string) {
	c.versions.Add(strings.ToLower(id), versions)
}

// readNuspec looks in memory first, then on disk.
func (c *metadataCache) readNuspec(id, version string) ([]byte, bool) {
	key := nuspecKey(id, version)
	if data, ok := c.memory.Get(key); ok {
		return data, true
	}
	if c.dir == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.nuspecPath(id, version))
	if err != nil {
		return nil, false
	}
	c.memory.Add(key, data)
	return data, true
}

// writeNuspec stores a manifest. The file is written to a temporary name and
// renamed into place, so readers never observe a partial file.
func (c *metadataCache) writeNuspec(id, version string, data []byte) error {
	c.memory.Add(nuspecKey(id, version), data)
	if c.dir == "" {
		return nil
	}

	path := c.nuspecPath(id, version)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, cacheDirMode); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".nuspec-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmp.Name(), cacheFileMode); chmodErr != nil {
		return fmt.Errorf("failed to write cache file: %w", chmodErr)
	}
	return os.Rename(tmp.Name(), path)
}

func (c *metadataCache) nuspecPath(id, version string) string {
	lowerID := strings.ToLower(id)
	return filepath.Join(c.dir, lowerID, flatContainerVersion(version), lowerID+".nuspec")
}

func nuspecKey(id, version string) string {
	return "nuspec/" + strings.ToLower(id) + "/" + flatContainerVersion(version)
}
