package entities

// VersionCatalog is the set of published versions returned by a version
// finder, already filtered for the purpose it was requested for.
type VersionCatalog struct {
	CurrentVersion string
	versions       []string
}

// NewVersionCatalog creates a catalog, dropping duplicate versions.
func NewVersionCatalog(currentVersion string, versions ...string) VersionCatalog {
	unique := make([]string, 0, len(versions))
	for _, version := range versions {
		duplicate := false
		for _, seen := range unique {
			if CompareVersions(seen, version) == 0 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, version)
		}
	}
	return VersionCatalog{CurrentVersion: currentVersion, versions: unique}
}

// Len returns the number of versions in the catalog.
func (c VersionCatalog) Len() int {
	return len(c.versions)
}

// Contains reports whether version is part of the catalog.
func (c VersionCatalog) Contains(version string) bool {
	for _, candidate := range c.versions {
		if CompareVersions(candidate, version) == 0 {
			return true
		}
	}
	return false
}

// Ordered returns the versions lowest first when ascending, highest first otherwise.
func (c VersionCatalog) Ordered(ascending bool) []string {
	ordered := make([]string, len(c.versions))
	copy(ordered, c.versions)
	SortVersions(ordered, ascending)
	return ordered
}
