package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// PeerDependencyResolver finds the other top-level dependencies that have to
// move once the candidate set is pinned to a new version.
//
// A single pass is performed: peers found here are not checked again for
// membership in a shared-property group.
type PeerDependencyResolver struct {
	versions   repositories.VersionFinderRepository
	buildFiles repositories.BuildFileRepository
}

// NewPeerDependencyResolver creates a PeerDependencyResolver over the given collaborators.
func NewPeerDependencyResolver(
	versions repositories.VersionFinderRepository,
	buildFiles repositories.BuildFileRepository,
) *PeerDependencyResolver {
	return &PeerDependencyResolver{versions: versions, buildFiles: buildFiles}
}

// ResolvePeers returns the dependencies to update, highest version per name,
// restricted to names the affected projects declare directly.
func (it *PeerDependencyResolver) ResolvePeers(
	ctx context.Context,
	workspacePath string,
	discovery entities.WorkspaceDiscovery,
	candidateIDs entities.NameSet,
	newVersion string,
) ([]entities.Dependency, error) {
	affected := discovery.ProjectsReferencingAny(candidateIDs)
	if len(affected) == 0 {
		return []entities.Dependency{}, nil
	}

	frameworks := entities.TargetFrameworksOf(affected)
	topLevel := topLevelNames(affected)

	pinned := make([]entities.Dependency, 0, candidateIDs.Len())
	for _, id := range candidateIDs.Names() {
		pinned = append(pinned, entities.Dependency{
			Name:    id,
			Version: newVersion,
			Type:    entities.DependencyTypeUnknown,
		})
	}

	projectPath := affected[0].FilePath
	var resolved []entities.Dependency
	for _, framework := range frameworks.Names() {
		graph, err := it.buildFiles.GetPackageDependencyGraph(ctx, workspacePath, projectPath, framework, pinned)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate dependencies of %s for %s: %w", projectPath, framework, err)
		}

		for _, dep := range graph {
			infoURL, urlErr := it.versions.GetPackageInfoURL(ctx, dep.Name, dep.Version)
			if urlErr != nil {
				return nil, fmt.Errorf("failed to get info URL for %s %s: %w", dep.Name, dep.Version, urlErr)
			}
			resolved = append(resolved, dep.WithTransitive(false).WithInfoURL(infoURL))
		}
	}

	peers := highestPerName(resolved)
	result := make([]entities.Dependency, 0, len(peers))
	for _, dep := range peers {
		if topLevel.Contains(dep.Name) {
			result = append(result, dep)
			continue
		}
		logger.Debugf("[peers] %s %s is not declared directly, dropping", dep.Name, dep.Version)
	}
	return result, nil
}

// topLevelNames collects the non-transitive dependency names of projects.
func topLevelNames(projects []entities.Project) entities.NameSet {
	names := entities.NewNameSet()
	for _, project := range projects {
		for _, dep := range project.Dependencies {
			if !dep.IsTransitive {
				names = names.With(dep.Name)
			}
		}
	}
	return names
}

// highestPerName keeps one entry per name (first-seen order) holding the
// highest version observed for it.
func highestPerName(deps []entities.Dependency) []entities.Dependency {
	positions := make(map[string]int, len(deps))
	var result []entities.Dependency
	for _, dep := range deps {
		key := strings.ToLower(dep.Name)
		pos, seen := positions[key]
		if !seen {
			positions[key] = len(result)
			result = append(result, dep)
			continue
		}
		if entities.CompareVersions(dep.Version, result[pos].Version) > 0 {
			result[pos] = dep
		}
	}
	return result
}
