package nuget

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

const (
	nugetOrgHost   = "api.nuget.org"
	galleryURLFmt  = "https://www.nuget.org/packages/%s/%s"
	maxGraphVisits = 4096
	maxGraphRounds = 16
)

// FeedRepository implements every package collaborator of the analysis on
// top of a NuGet v3 feed.
type FeedRepository struct {
	client   *client
	cache    *metadataCache
	nugetOrg bool
}

// NewFeedRepository creates a FeedRepository from settings.
func NewFeedRepository(settings *entities.Settings) (repositories.PackageFeedRepository, error) {
	cache, err := newMetadataCache(settings.CacheDir)
	if err != nil {
		return nil, err
	}

	nugetOrg := false
	if parsed, parseErr := url.Parse(settings.Source); parseErr == nil {
		nugetOrg = strings.EqualFold(parsed.Hostname(), nugetOrgHost)
	}

	return &FeedRepository{
		client:   newClient(settings),
		cache:    cache,
		nugetOrg: nugetOrg,
	}, nil
}

// GetVersions returns the newer versions of the dependency that are neither
// ignored nor, for vulnerable dependencies, inside any vulnerable range.
func (r *FeedRepository) GetVersions(
	ctx context.Context,
	info entities.DependencyInfo,
) (entities.VersionCatalog, error) {
	candidates, err := r.newerVersions(ctx, info.Name, info.Version)
	if err != nil {
		return entities.VersionCatalog{}, err
	}

	ignored := make([]requirement, 0, len(info.IgnoredVersions))
	for _, raw := range info.IgnoredVersions {
		ignored = append(ignored, parseRequirement(raw))
	}

	var vulnerable []requirement
	if info.IsVulnerable {
		for _, vulnerability := range info.Vulnerabilities {
			if vulnerability.DependencyName != "" && !entities.SameName(vulnerability.DependencyName, info.Name) {
				continue
			}
			for _, raw := range vulnerability.VulnerableVersions {
				vulnerable = append(vulnerable, parseRequirement(raw))
			}
		}
	}

	versions := make([]string, 0, len(candidates))
	for _, version := range candidates {
		if matchesAny(ignored, version) || matchesAny(vulnerable, version) {
			continue
		}
		versions = append(versions, version)
	}
	return entities.NewVersionCatalog(info.Version, versions...), nil
}

// GetVersionsFrom returns the versions of packageID newer than currentVersion.
func (r *FeedRepository) GetVersionsFrom(
	ctx context.Context,
	packageID, currentVersion string,
) (entities.VersionCatalog, error) {
	versions, err := r.newerVersions(ctx, packageID, currentVersion)
	if err != nil {
		return entities.VersionCatalog{}, err
	}
	return entities.NewVersionCatalog(currentVersion, versions...), nil
}

// VersionsExist checks that every package publishes version.
func (r *FeedRepository) VersionsExist(ctx context.Context, packageIDs []string, version string) (bool, error) {
	for _, id := range packageIDs {
		published, err := r.publishedVersions(ctx, id)
		if err != nil {
			return false, err
		}
		if !entities.NewVersionCatalog("", published...).Contains(version) {
			return false, nil
		}
	}
	return true, nil
}

// GetPackageInfoURL prefers the manifest's project or repository URL.
func (r *FeedRepository) GetPackageInfoURL(ctx context.Context, packageID, version string) (string, error) {
	spec, err := r.manifest(ctx, packageID, version)
	if err != nil {
		return "", err
	}

	if spec != nil {
		if spec.Metadata.ProjectURL != "" {
			return spec.Metadata.ProjectURL, nil
		}
		if spec.Metadata.Repository.URL != "" {
			return spec.Metadata.Repository.URL, nil
		}
	}
	if r.nugetOrg {
		return fmt.Sprintf(galleryURLFmt, packageID, version), nil
	}
	return "", nil
}

// CheckCompatible reports whether packageID@version supports every framework.
// A version the feed does not have is not compatible with anything.
func (r *FeedRepository) CheckCompatible(
	ctx context.Context,
	packageID, version string,
	frameworks []string,
) (bool, error) {
	spec, err := r.manifest(ctx, packageID, version)
	if err != nil {
		return false, err
	}
	if spec == nil {
		return false, nil
	}

	for _, tfm := range frameworks {
		if !spec.Metadata.supports(tfm) {
			logger.Debugf("[nuget] %s %s does not support %s", packageID, version, tfm)
			return false, nil
		}
	}
	return true, nil
}

// GetPackageDependencyGraph resolves the closure of the pinned packages for
// framework the way a restore would: each dependency takes the lowest version
// its range allows and, across paths, the highest of those wins. Pinned
// packages keep their pinned versions. Resolution repeats until the chosen
// versions settle, so packages only required by a superseded version drop out.
func (r *FeedRepository) GetPackageDependencyGraph(
	ctx context.Context,
	workspacePath, projectPath, framework string,
	pinned []entities.Dependency,
) ([]entities.Dependency, error) {
	logger.Debugf("[nuget] Evaluating %s in %s for %s", projectPath, workspacePath, framework)

	chosen := make(map[string]string)
	for range maxGraphRounds {
		graph, demanded, err := r.walkGraph(ctx, framework, pinned, chosen)
		if err != nil {
			return nil, err
		}
		if sameVersions(chosen, demanded) {
			return graph, nil
		}
		chosen = demanded
	}
	return nil, fmt.Errorf("dependency graph of %s for %s did not settle", projectPath, framework)
}

// walkGraph visits the packages reachable from pinned, using the versions in
// chosen where a previous walk settled them. It returns the visited nodes in
// first-seen order and, per transitive package, the highest version any
// visited parent asked for.
func (r *FeedRepository) walkGraph(
	ctx context.Context,
	framework string,
	pinned []entities.Dependency,
	chosen map[string]string,
) ([]entities.Dependency, map[string]string, error) {
	pinnedNames := entities.NewNameSet()
	queue := make([]entities.Dependency, 0, len(pinned))
	visited := make(map[string]bool)
	for _, dep := range pinned {
		key := strings.ToLower(dep.Name)
		if visited[key] {
			continue
		}
		visited[key] = true
		pinnedNames = pinnedNames.With(dep.Name)
		queue = append(queue, entities.Dependency{
			Name:             dep.Name,
			Version:          dep.Version,
			Type:             entities.DependencyTypeUnknown,
			TargetFrameworks: []string{framework},
		})
	}

	demanded := make(map[string]string)
	var graph []entities.Dependency
	for len(queue) > 0 {
		if len(graph) > maxGraphVisits {
			return nil, nil, fmt.Errorf("dependency graph of %v for %s is too large", pinnedNames.Names(), framework)
		}

		current := queue[0]
		queue = queue[1:]
		graph = append(graph, current)

		spec, err := r.manifest(ctx, current.Name, current.Version)
		if err != nil {
			return nil, nil, err
		}
		if spec == nil {
			logger.Warnf("[nuget] %s %s is not on the feed, its dependencies are unknown", current.Name, current.Version)
			continue
		}

		for _, child := range spec.Metadata.dependenciesFor(framework) {
			if child.ID == "" || pinnedNames.Contains(child.ID) {
				continue
			}
			version, resolveErr := r.resolveRange(ctx, child.ID, child.Version)
			if resolveErr != nil {
				return nil, nil, resolveErr
			}
			if version == "" {
				continue
			}

			key := strings.ToLower(child.ID)
			if previous, ok := demanded[key]; !ok || entities.CompareVersions(version, previous) > 0 {
				demanded[key] = version
			}
			if visited[key] {
				continue
			}
			visited[key] = true

			if settled, ok := chosen[key]; ok {
				version = settled
			}
			queue = append(queue, entities.Dependency{
				Name:             child.ID,
				Version:          version,
				Type:             entities.DependencyTypeUnknown,
				TargetFrameworks: []string{framework},
				IsTransitive:     true,
			})
		}
	}
	return graph, demanded, nil
}

// resolveRange returns the version a restore picks for a dependency range: the
// inclusive lower bound itself, or the lowest published version above an
// exclusive one that the range still allows.
func (r *FeedRepository) resolveRange(ctx context.Context, packageID, versionRange string) (string, error) {
	lower, exclusive := lowerBound(versionRange)
	if !exclusive {
		return lower, nil
	}

	published, err := r.publishedVersions(ctx, packageID)
	if err != nil {
		return "", err
	}
	allowed := parseRequirement(versionRange)
	candidates := append([]string(nil), published...)
	entities.SortVersions(candidates, true)
	for _, version := range candidates {
		if entities.CompareVersions(version, lower) > 0 && allowed.matches(version) {
			return version, nil
		}
	}
	logger.Debugf("[nuget] No published version of %s satisfies %s", packageID, versionRange)
	return "", nil
}

func sameVersions(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, version := range a {
		other, ok := b[key]
		if !ok || entities.CompareVersions(version, other) != 0 {
			return false
		}
	}
	return true
}

// newerVersions lists stable versions above current; prereleases are only
// offered when current is itself a prerelease. A current value that is a
// range or a floating version is compared through its lower bound; one that
// cannot be read at all yields no candidates.
func (r *FeedRepository) newerVersions(ctx context.Context, packageID, current string) ([]string, error) {
	published, err := r.publishedVersions(ctx, packageID)
	if err != nil {
		return nil, err
	}

	floor, allowPrerelease, ok := versionFloor(current)
	if !ok {
		logger.Warnf("[nuget] Cannot read version %q of %s, no newer versions offered", current, packageID)
		return nil, nil
	}

	var versions []string
	for _, version := range published {
		if !entities.IsValidVersion(version) {
			continue
		}
		if entities.IsPrerelease(version) && !allowPrerelease {
			continue
		}
		if entities.CompareVersions(version, floor) <= 0 {
			continue
		}
		versions = append(versions, version)
	}
	return versions, nil
}

// versionFloor returns the version candidates must exceed and whether
// prereleases are acceptable.
func versionFloor(current string) (string, bool, bool) {
	if entities.IsValidVersion(current) {
		return current, entities.IsPrerelease(current), true
	}

	lower, _ := lowerBound(current)
	floor, floatingLabel := floatingFloor(lower)
	if !entities.IsValidVersion(floor) {
		return "", false, false
	}
	return floor, floatingLabel || entities.IsPrerelease(floor), true
}

func (r *FeedRepository) publishedVersions(ctx context.Context, packageID string) ([]string, error) {
	if versions, ok := r.cache.getVersions(packageID); ok {
		return versions, nil
	}

	versions, err := r.client.listVersions(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of %s: %w", packageID, err)
	}
	r.cache.putVersions(packageID, versions)
	return versions, nil
}

// manifest returns the parsed nuspec, or nil when the feed does not have it.
func (r *FeedRepository) manifest(ctx context.Context, packageID, version string) (*nuspec, error) {
	data, cached := r.cache.readNuspec(packageID, version)
	if !cached {
		downloaded, err := r.client.downloadNuspec(ctx, packageID, version)
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to download manifest of %s %s: %w", packageID, version, err)
		}
		if writeErr := r.cache.writeNuspec(packageID, version, downloaded); writeErr != nil {
			logger.Warnf("[nuget] Failed to cache manifest of %s %s: %v", packageID, version, writeErr)
		}
		data = downloaded
	}

	return parseNuspec(data)
}

var _ repositories.PackageFeedRepository = (*FeedRepository)(nil)
