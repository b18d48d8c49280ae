package repositories

import (
	"errors"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

var (
	// ErrInputNotFound indicates an input document does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputEmpty indicates an input document exists but has no content.
	ErrInputEmpty = errors.New("input file is empty")
)

// DiscoveryRepository loads the documents produced by earlier pipeline stages.
type DiscoveryRepository interface {
	ReadDiscovery(path string) (*entities.WorkspaceDiscovery, error)
	ReadDependencyInfo(path string) (*entities.DependencyInfo, error)
}

// AnalysisRepository persists analysis results for the rewrite stage.
type AnalysisRepository interface {
	// WriteAnalysis stores result as <dir>/<dependencyName>.json and returns the path written.
	WriteAnalysis(dir, dependencyName string, result entities.AnalysisResult) (string, error)
}
