package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// AnalysisRepository writes analysis results as indented JSON documents.
type AnalysisRepository struct{}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{}
}

var _ repositories.AnalysisRepository = (*AnalysisRepository)(nil)

// WriteAnalysis writes <dir>/<dependencyName>.json, replacing any previous result.
func (r *AnalysisRepository) WriteAnalysis(
	dir, dependencyName string,
	result entities.AnalysisResult,
) (string, error) {
	if result.UpdatedDependencies == nil {
		result.UpdatedDependencies = []entities.Dependency{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	data = append(data, '\n')

	if mkdirErr := os.MkdirAll(dir, dirMode); mkdirErr != nil {
		return "", fmt.Errorf("failed to create analysis directory: %w", mkdirErr)
	}

	path := filepath.Join(dir, dependencyName+".json")
	tmp, err := os.CreateTemp(dir, "."+dependencyName+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary analysis file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write analysis: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return "", fmt.Errorf("failed to write analysis: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmp.Name(), fileMode); chmodErr != nil {
		return "", fmt.Errorf("failed to write analysis: %w", chmodErr)
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		return "", fmt.Errorf("failed to write analysis: %w", renameErr)
	}

	return path, nil
}
