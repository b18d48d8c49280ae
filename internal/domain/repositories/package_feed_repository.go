package repositories

// PackageFeedRepository is a package feed able to serve every collaborator
// the analysis needs.
type PackageFeedRepository interface {
	VersionFinderRepository
	CompatibilityRepository
	BuildFileRepository
}
