package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// UpdateKind classifies the distance between two versions.
type UpdateKind string

const (
	UpdateKindMajor   UpdateKind = "major"
	UpdateKindMinor   UpdateKind = "minor"
	UpdateKindPatch   UpdateKind = "patch"
	UpdateKindUnknown UpdateKind = "unknown"
)

const maxVersionParts = 4

// nugetVersion is a parsed NuGet version: up to four numeric parts
// (major.minor.patch.revision) and an optional prerelease label.
type nugetVersion struct {
	release    [maxVersionParts]int
	prerelease string // lower case
}

// parseVersion accepts "1", "1.2", "1.2.3" and "1.2.3.4", each optionally
// followed by "-label" and "+metadata". A leading 'v' is tolerated.
func parseVersion(raw string) (nugetVersion, bool) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(strings.TrimPrefix(value, "v"), "V")
	if before, _, found := strings.Cut(value, "+"); found {
		value = before
	}

	release, prerelease, hasPrerelease := strings.Cut(value, "-")
	if hasPrerelease && !validLabel(prerelease) {
		return nugetVersion{}, false
	}

	parts := strings.Split(release, ".")
	if len(parts) > maxVersionParts {
		return nugetVersion{}, false
	}

	var parsed nugetVersion
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return nugetVersion{}, false
		}
		number, err := strconv.Atoi(part)
		if err != nil {
			return nugetVersion{}, false
		}
		parsed.release[i] = number
	}
	parsed.prerelease = strings.ToLower(prerelease)
	return parsed, true
}

func validLabel(label string) bool {
	for _, identifier := range strings.Split(label, ".") {
		if identifier == "" {
			return false
		}
		for _, r := range identifier {
			isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !isAlnum && r != '-' {
				return false
			}
		}
	}
	return true
}

func (v nugetVersion) compare(other nugetVersion) int {
	for i := range v.release {
		if v.release[i] != other.release[i] {
			if v.release[i] < other.release[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case v.prerelease == other.prerelease:
		return 0
	case v.prerelease == "":
		return 1
	case other.prerelease == "":
		return -1
	}

	// semver precedence for the labels: numeric identifiers compare numerically
	a, b := "v0.0.0-"+v.prerelease, "v0.0.0-"+other.prerelease
	if semver.IsValid(a) && semver.IsValid(b) {
		return semver.Compare(a, b)
	}
	return strings.Compare(v.prerelease, other.prerelease)
}

func (v nugetVersion) String() string {
	result := fmt.Sprintf("%d.%d.%d", v.release[0], v.release[1], v.release[2])
	if v.release[3] != 0 {
		result += "." + strconv.Itoa(v.release[3])
	}
	if v.prerelease != "" {
		result += "-" + v.prerelease
	}
	return result
}

// normalizeVersion returns the canonical spelling of a version with a 'v'
// prefix: three parts, a revision only when non-zero, lower-case label and
// no build metadata. Unparsable input is only trimmed and prefixed.
func normalizeVersion(version string) string {
	parsed, ok := parseVersion(version)
	if !ok {
		return "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	}
	return "v" + parsed.String()
}

// IsValidVersion reports whether the string parses as a version.
func IsValidVersion(version string) bool {
	_, ok := parseVersion(version)
	return ok
}

// IsPrerelease reports whether the version carries a prerelease label.
func IsPrerelease(version string) bool {
	parsed, ok := parseVersion(version)
	return ok && parsed.prerelease != ""
}

// CompareVersions returns -1, 0 or +1. When either side is not a valid
// version it falls back to case-insensitive string comparison.
func CompareVersions(a, b string) int {
	va, okA := parseVersion(a)
	vb, okB := parseVersion(b)
	if okA && okB {
		return va.compare(vb)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortVersions sorts versions in place, ascending or descending.
func SortVersions(versions []string, ascending bool) {
	sort.SliceStable(versions, func(i, j int) bool {
		cmp := CompareVersions(versions[i], versions[j])
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

// AnalyzeUpdateKind determines whether moving from current to next is a
// major, minor or patch change. Revision changes count as patches.
func AnalyzeUpdateKind(current, next string) UpdateKind {
	from, okFrom := parseVersion(current)
	to, okTo := parseVersion(next)
	if !okFrom || !okTo {
		return UpdateKindUnknown
	}

	if from.release[0] != to.release[0] {
		return UpdateKindMajor
	}
	if from.release[1] != to.release[1] {
		return UpdateKindMinor
	}
	return UpdateKindPatch
}
