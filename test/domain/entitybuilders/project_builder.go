//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// ProjectBuilder helps create test projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	filePath     string
	frameworks   []string
	dependencies []entities.Dependency
}

// NewProjectBuilder creates a new project builder with sensible defaults.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		filePath:    "src/App/App.csproj",
		frameworks:  []string{"net8.0"},
	}
}

// WithFilePath sets the project file path.
func (b *ProjectBuilder) WithFilePath(path string) *ProjectBuilder {
	b.filePath = path
	return b
}

// WithTargetFrameworks sets the project target frameworks.
func (b *ProjectBuilder) WithTargetFrameworks(frameworks ...string) *ProjectBuilder {
	b.frameworks = frameworks
	return b
}

// WithDependency appends a dependency.
func (b *ProjectBuilder) WithDependency(dep entities.Dependency) *ProjectBuilder {
	b.dependencies = append(b.dependencies, dep)
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() entities.Project {
	return entities.Project{
		FilePath:         b.filePath,
		TargetFrameworks: append([]string(nil), b.frameworks...),
		Dependencies:     append([]entities.Dependency(nil), b.dependencies...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.filePath = "src/App/App.csproj"
	b.frameworks = []string{"net8.0"}
	b.dependencies = nil
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	return &ProjectBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		filePath:     b.filePath,
		frameworks:   append([]string(nil), b.frameworks...),
		dependencies: append([]entities.Dependency(nil), b.dependencies...),
	}
}
