package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// DiscoveryRepository reads discovery and dependency documents from JSON files.
type DiscoveryRepository struct{}

// NewDiscoveryRepository creates a new DiscoveryRepository.
func NewDiscoveryRepository() *DiscoveryRepository {
	return &DiscoveryRepository{}
}

var _ repositories.DiscoveryRepository = (*DiscoveryRepository)(nil)

// ReadDiscovery loads the workspace discovery document.
func (r *DiscoveryRepository) ReadDiscovery(path string) (*entities.WorkspaceDiscovery, error) {
	var discovery entities.WorkspaceDiscovery
	if err := readDocument(path, &discovery); err != nil {
		return nil, err
	}
	return &discovery, nil
}

// ReadDependencyInfo loads the target dependency document.
func (r *DiscoveryRepository) ReadDependencyInfo(path string) (*entities.DependencyInfo, error) {
	var info entities.DependencyInfo
	if err := readDocument(path, &info); err != nil {
		return nil, err
	}
	if info.Name == "" {
		return nil, fmt.Errorf("dependency document %q has no name", path)
	}
	return &info, nil
}

// readDocument reports missing and empty files with distinct sentinel errors.
func readDocument(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", repositories.ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to read %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s", repositories.ErrInputEmpty, path)
	}

	if unmarshalErr := json.Unmarshal(data, target); unmarshalErr != nil {
		return fmt.Errorf("failed to parse %q: %w", path, unmarshalErr)
	}
	return nil
}
