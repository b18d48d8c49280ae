//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// SpyPackageFeedRepository implements repositories.PackageFeedRepository as a
// configurable spy. Package IDs are matched case-insensitively.
type SpyPackageFeedRepository struct {
	mu sync.Mutex

	// --- GetVersions / GetVersionsFrom ---
	Versions    map[string][]string // package ID -> versions handed back as the catalog
	VersionsErr error
	// spy: names requested
	GetVersionsCalls     []string
	GetVersionsFromCalls []string

	// --- VersionsExist ---
	Published map[string][]string // package ID -> published versions; falls back to Versions
	ExistErr  error
	// spy: probes received
	ExistCalls []ExistCall

	// --- CheckCompatible ---
	Incompatible map[string]bool // "id@version" (lowercase id) -> incompatible everywhere
	CompatErr    error
	// spy: checks received
	CompatCalls []CompatCall

	// --- GetPackageDependencyGraph ---
	Graphs   map[string][]entities.Dependency // framework -> graph; pinned deps when absent
	GraphErr error
	// spy: evaluations received
	GraphCalls []GraphCall

	// --- GetPackageInfoURL ---
	InfoURLErr error
}

// ExistCall records a single invocation of VersionsExist.
type ExistCall struct {
	IDs     []string
	Version string
}

// CompatCall records a single invocation of CheckCompatible.
type CompatCall struct {
	ID         string
	Version    string
	Frameworks []string
}

// GraphCall records a single invocation of GetPackageDependencyGraph.
type GraphCall struct {
	WorkspacePath string
	ProjectPath   string
	Framework     string
	Pinned        []entities.Dependency
}

var _ repositories.PackageFeedRepository = (*SpyPackageFeedRepository)(nil)

func (s *SpyPackageFeedRepository) GetVersions(
	_ context.Context, info entities.DependencyInfo,
) (entities.VersionCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetVersionsCalls = append(s.GetVersionsCalls, info.Name)
	if s.VersionsErr != nil {
		return entities.VersionCatalog{}, s.VersionsErr
	}
	return entities.NewVersionCatalog(info.Version, lookup(s.Versions, info.Name)...), nil
}

func (s *SpyPackageFeedRepository) GetVersionsFrom(
	_ context.Context, packageID, currentVersion string,
) (entities.VersionCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetVersionsFromCalls = append(s.GetVersionsFromCalls, packageID)
	if s.VersionsErr != nil {
		return entities.VersionCatalog{}, s.VersionsErr
	}
	return entities.NewVersionCatalog(currentVersion, lookup(s.Versions, packageID)...), nil
}

func (s *SpyPackageFeedRepository) VersionsExist(_ context.Context, ids []string, version string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExistCalls = append(s.ExistCalls, ExistCall{IDs: ids, Version: version})
	if s.ExistErr != nil {
		return false, s.ExistErr
	}

	published := s.Published
	if published == nil {
		published = s.Versions
	}
	for _, id := range ids {
		if !entities.NewVersionCatalog("", lookup(published, id)...).Contains(version) {
			return false, nil
		}
	}
	return true, nil
}

func (s *SpyPackageFeedRepository) GetPackageInfoURL(_ context.Context, id, version string) (string, error) {
	if s.InfoURLErr != nil {
		return "", s.InfoURLErr
	}
	return fmt.Sprintf("https://packages.test/%s/%s", strings.ToLower(id), version), nil
}

func (s *SpyPackageFeedRepository) CheckCompatible(
	_ context.Context, id, version string, frameworks []string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CompatCalls = append(s.CompatCalls, CompatCall{ID: id, Version: version, Frameworks: frameworks})
	if s.CompatErr != nil {
		return false, s.CompatErr
	}
	return !s.Incompatible[strings.ToLower(id)+"@"+version], nil
}

func (s *SpyPackageFeedRepository) GetPackageDependencyGraph(
	_ context.Context,
	workspacePath, projectPath, framework string,
	pinned []entities.Dependency,
) ([]entities.Dependency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GraphCalls = append(s.GraphCalls, GraphCall{
		WorkspacePath: workspacePath,
		ProjectPath:   projectPath,
		Framework:     framework,
		Pinned:        pinned,
	})
	if s.GraphErr != nil {
		return nil, s.GraphErr
	}
	if graph, ok := s.Graphs[framework]; ok {
		return graph, nil
	}
	return pinned, nil
}

// Probed returns the versions passed to VersionsExist, in call order.
func (s *SpyPackageFeedRepository) Probed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := make([]string, 0, len(s.ExistCalls))
	for _, call := range s.ExistCalls {
		versions = append(versions, call.Version)
	}
	return versions
}

func lookup(byID map[string][]string, id string) []string {
	for key, versions := range byID {
		if strings.EqualFold(key, id) {
			return versions
		}
	}
	return nil
}
