package repositories

import "context"

// CompatibilityRepository answers whether a package version supports target frameworks.
// Answers are authoritative and side-effect free.
type CompatibilityRepository interface {
	CheckCompatible(ctx context.Context, packageID, version string, frameworks []string) (bool, error)
}
