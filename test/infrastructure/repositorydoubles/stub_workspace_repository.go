//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// StubDiscoveryRepository implements repositories.DiscoveryRepository with canned documents.
type StubDiscoveryRepository struct {
	mu sync.Mutex

	// --- ReadDiscovery ---
	Discovery    *entities.WorkspaceDiscovery
	DiscoveryErr error

	// --- ReadDependencyInfo ---
	Infos   map[string]*entities.DependencyInfo // path -> document
	InfoErr error
	// spy: paths read
	InfoPaths []string
}

var _ repositories.DiscoveryRepository = (*StubDiscoveryRepository)(nil)

func (s *StubDiscoveryRepository) ReadDiscovery(_ string) (*entities.WorkspaceDiscovery, error) {
	return s.Discovery, s.DiscoveryErr
}

func (s *StubDiscoveryRepository) ReadDependencyInfo(path string) (*entities.DependencyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InfoPaths = append(s.InfoPaths, path)
	if s.InfoErr != nil {
		return nil, s.InfoErr
	}
	info, ok := s.Infos[path]
	if !ok {
		return nil, repositories.ErrInputNotFound
	}
	return info, nil
}

// SpyAnalysisRepository implements repositories.AnalysisRepository and records every write.
type SpyAnalysisRepository struct {
	mu sync.Mutex

	WriteErr error
	Writes   []WriteCall
}

// WriteCall records a single invocation of WriteAnalysis.
type WriteCall struct {
	Dir    string
	Name   string
	Result entities.AnalysisResult
}

var _ repositories.AnalysisRepository = (*SpyAnalysisRepository)(nil)

func (s *SpyAnalysisRepository) WriteAnalysis(
	dir, dependencyName string, result entities.AnalysisResult,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return "", s.WriteErr
	}
	s.Writes = append(s.Writes, WriteCall{Dir: dir, Name: dependencyName, Result: result})
	return dir + "/" + dependencyName + ".json", nil
}

// WrittenNames returns the dependency names written so far.
func (s *SpyAnalysisRepository) WrittenNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.Writes))
	for _, write := range s.Writes {
		names = append(names, write.Name)
	}
	return names
}
