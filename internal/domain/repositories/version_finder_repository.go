package repositories

import (
	"context"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// VersionFinderRepository abstracts the remote version catalog of a package feed.
type VersionFinderRepository interface {
	// GetVersions returns the versions that could replace the target dependency.
	// For vulnerable dependencies only versions clearing every known advisory are returned.
	GetVersions(ctx context.Context, info entities.DependencyInfo) (entities.VersionCatalog, error)

	// GetVersionsFrom returns the versions of packageID that are newer than currentVersion.
	GetVersionsFrom(ctx context.Context, packageID, currentVersion string) (entities.VersionCatalog, error)

	// VersionsExist is true only if every package in packageIDs publishes version.
	VersionsExist(ctx context.Context, packageIDs []string, version string) (bool, error)

	// GetPackageInfoURL returns a best-effort metadata link, or "" when none is known.
	GetPackageInfoURL(ctx context.Context, packageID, version string) (string, error)
}
