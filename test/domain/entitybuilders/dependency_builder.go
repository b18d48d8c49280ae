//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// DependencyBuilder helps create test dependencies with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      string
	depType      entities.DependencyType
	property     string
	frameworks   []string
	isTransitive bool
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "Test.Package",
		version:     "1.0.0",
		depType:     entities.DependencyTypePackageReference,
		frameworks:  []string{"net8.0"},
	}
}

// WithName sets the package name.
func (b *DependencyBuilder) WithName(name string) *DependencyBuilder {
	b.name = name
	return b
}

// WithVersion sets the declared version.
func (b *DependencyBuilder) WithVersion(version string) *DependencyBuilder {
	b.version = version
	return b
}

// WithType sets the declaration type.
func (b *DependencyBuilder) WithType(depType entities.DependencyType) *DependencyBuilder {
	b.depType = depType
	return b
}

// WithProperty makes the version come from the given build property.
func (b *DependencyBuilder) WithProperty(property string) *DependencyBuilder {
	b.property = property
	return b
}

// WithTargetFrameworks sets the frameworks the dependency applies to.
func (b *DependencyBuilder) WithTargetFrameworks(frameworks ...string) *DependencyBuilder {
	b.frameworks = frameworks
	return b
}

// Transitive marks the dependency as transitive.
func (b *DependencyBuilder) Transitive() *DependencyBuilder {
	b.isTransitive = true
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	dep := entities.Dependency{
		Name:             b.name,
		Version:          b.version,
		Type:             b.depType,
		TargetFrameworks: append([]string(nil), b.frameworks...),
		IsDirect:         !b.isTransitive,
		IsTransitive:     b.isTransitive,
	}
	if b.property != "" {
		dep.EvaluationResult = &entities.EvaluationResult{
			ResultType:       "Success",
			OriginalValue:    "$(" + b.property + ")",
			EvaluatedValue:   b.version,
			RootPropertyName: b.property,
		}
	}
	return dep
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "Test.Package"
	b.version = "1.0.0"
	b.depType = entities.DependencyTypePackageReference
	b.property = ""
	b.frameworks = []string{"net8.0"}
	b.isTransitive = false
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		depType:      b.depType,
		property:     b.property,
		frameworks:   append([]string(nil), b.frameworks...),
		isTransitive: b.isTransitive,
	}
}
