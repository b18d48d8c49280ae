package repositories

import (
	"context"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// BuildFileRepository evaluates dependency graphs the way the build would.
type BuildFileRepository interface {
	// GetPackageDependencyGraph returns every package that a project targeting
	// framework would end up with if the pinned packages were set to their
	// given versions. The pinned packages themselves are part of the result.
	GetPackageDependencyGraph(
		ctx context.Context,
		workspacePath, projectPath, framework string,
		pinned []entities.Dependency,
	) ([]entities.Dependency, error)
}
