package commands

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// Analyzer decides whether a dependency can be updated and computes the
// version and peer updates that go with it.
type Analyzer struct {
	selector *VersionSelector
	peers    *PeerDependencyResolver
}

// NewAnalyzer wires an Analyzer on top of a package feed.
func NewAnalyzer(feed repositories.PackageFeedRepository) *Analyzer {
	return &Analyzer{
		selector: NewVersionSelector(feed, feed),
		peers:    NewPeerDependencyResolver(feed, feed),
	}
}

// Analyze runs one analysis. Collaborator failures are returned as-is and no
// partial result is produced.
func (it *Analyzer) Analyze(
	ctx context.Context,
	repoRoot string,
	discovery entities.WorkspaceDiscovery,
	info entities.DependencyInfo,
) (entities.AnalysisResult, error) {
	log := logger.WithFields(logger.Fields{
		"run":        uuid.NewString(),
		"dependency": info.Name,
	})

	referencing := discovery.ProjectsReferencing(info.Name)
	if !entities.IsUpdateNecessary(info, referencing) {
		log.Infof("[analyze] No update necessary for %s %s", info.Name, info.Version)
		return entities.NoUpdate(info.Version, false), nil
	}

	groups := entities.ResolveMultiDependencyGroups(
		discovery.Projects, info.Name, discovery.PropertyBoundDependencies(),
	)
	multiDependency := entities.UsesMultiDependencyProperty(groups)
	candidates := entities.CandidateSet(info.Name, groups)

	frameworks := entities.TargetFrameworksOf(referencing)
	if multiDependency {
		frameworks = entities.GroupTargetFrameworks(groups)
		log.Infof("[analyze] %s shares its version property with %v", info.Name, candidates.Names())
	}

	version, found, err := it.selector.SelectVersion(ctx, SelectionRequest{
		Target:       info,
		CandidateIDs: candidates,
		FindLowest:   info.IsVulnerable,
		Frameworks:   frameworks,
	})
	if err != nil {
		return entities.AnalysisResult{}, err
	}
	if !found {
		log.Infof("[analyze] No compatible version found for %s above %s", info.Name, info.Version)
		return entities.NoUpdate(info.Version, multiDependency), nil
	}

	log.Infof(
		"[analyze] Selected %s for %s (%s update from %s)",
		version, info.Name, entities.AnalyzeUpdateKind(info.Version, version), info.Version,
	)

	workspacePath := filepath.Join(repoRoot, discovery.Path)
	updated, err := it.peers.ResolvePeers(ctx, workspacePath, discovery, candidates, version)
	if err != nil {
		return entities.AnalysisResult{}, err
	}

	return entities.AnalysisResult{
		UpdatedVersion:                          version,
		CanUpdate:                               true,
		VersionComesFromMultiDependencyProperty: multiDependency,
		UpdatedDependencies:                     updated,
	}, nil
}
