package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// SelectionRequest describes one version search.
type SelectionRequest struct {
	Target       entities.DependencyInfo
	CandidateIDs entities.NameSet // packages that must land on the same version
	FindLowest   bool             // ascending search, used for vulnerability fixes
	Frameworks   entities.NameSet
}

// VersionSelector searches the feed for the first version usable by a whole
// candidate set on every target framework.
type VersionSelector struct {
	versions      repositories.VersionFinderRepository
	compatibility repositories.CompatibilityRepository
}

// NewVersionSelector creates a VersionSelector over the given collaborators.
func NewVersionSelector(
	versions repositories.VersionFinderRepository,
	compatibility repositories.CompatibilityRepository,
) *VersionSelector {
	return &VersionSelector{versions: versions, compatibility: compatibility}
}

// SelectVersion returns the chosen version and true, or false when no version
// qualifies. A miss is not an error.
func (it *VersionSelector) SelectVersion(ctx context.Context, req SelectionRequest) (string, bool, error) {
	catalog, err := it.fetchCatalog(ctx, req)
	if err != nil {
		return "", false, err
	}

	ordered := catalog.Ordered(req.FindLowest)
	if len(ordered) == 0 {
		logger.Debugf("[select] %s: no candidate versions", req.Target.Name)
		return "", false, nil
	}

	ids := req.CandidateIDs.Names()
	frameworks := req.Frameworks.Names()

	// An incompatible starting point means compatibility gating would only
	// cost remote calls: hand back the best candidate as-is.
	if entities.IsValidVersion(req.Target.Version) {
		compatible, checkErr := it.allCompatible(ctx, ids, req.Target.Version, frameworks)
		if checkErr != nil {
			return "", false, checkErr
		}
		if !compatible {
			logger.Debugf(
				"[select] %s %s is not compatible with %v, taking %s without probing",
				req.Target.Name, req.Target.Version, frameworks, ordered[0],
			)
			return ordered[0], true, nil
		}
	}

	for _, version := range ordered {
		exists, existErr := it.versions.VersionsExist(ctx, ids, version)
		if existErr != nil {
			return "", false, fmt.Errorf("failed to check existence of %s for %v: %w", version, ids, existErr)
		}
		if !exists {
			logger.Debugf("[select] %s is not published for every package in %v, skipping", version, ids)
			continue
		}

		compatible, checkErr := it.allCompatible(ctx, ids, version, frameworks)
		if checkErr != nil {
			return "", false, checkErr
		}
		if compatible {
			return version, true, nil
		}
		logger.Debugf("[select] %s is not compatible with %v, skipping", version, frameworks)
	}

	return "", false, nil
}

func (it *VersionSelector) fetchCatalog(ctx context.Context, req SelectionRequest) (entities.VersionCatalog, error) {
	if req.FindLowest {
		catalog, err := it.versions.GetVersions(ctx, req.Target)
		if err != nil {
			return entities.VersionCatalog{}, fmt.Errorf("failed to get versions for %s: %w", req.Target.Name, err)
		}
		return catalog, nil
	}

	catalog, err := it.versions.GetVersionsFrom(ctx, req.Target.Name, req.Target.Version)
	if err != nil {
		return entities.VersionCatalog{}, fmt.Errorf("failed to get versions for %s: %w", req.Target.Name, err)
	}
	return catalog, nil
}

// allCompatible checks every package of the set at version against frameworks.
func (it *VersionSelector) allCompatible(
	ctx context.Context,
	ids []string,
	version string,
	frameworks []string,
) (bool, error) {
	for _, id := range ids {
		compatible, err := it.compatibility.CheckCompatible(ctx, id, version, frameworks)
		if err != nil {
			return false, fmt.Errorf("failed to check compatibility of %s %s: %w", id, version, err)
		}
		if !compatible {
			return false, nil
		}
	}
	return true, nil
}
