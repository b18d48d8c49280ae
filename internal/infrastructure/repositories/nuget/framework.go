package nuget

import (
	"strconv"
	"strings"
)

const (
	familyNetCoreApp   = "netcoreapp"
	familyNetStandard  = "netstandard"
	familyNetFramework = "netframework"

	firstUnifiedNetMajor = 5
)

// framework is a parsed target framework moniker.
type framework struct {
	family  string
	version []int
}

// parseFramework understands short ("net8.0", "net472", "netstandard2.0")
// and long (".NETStandard2.0", ".NETFramework,Version=v4.7.2") monikers.
// Platform suffixes such as "-windows" are ignored.
func parseFramework(moniker string) (framework, bool) {
	value := strings.ToLower(strings.TrimSpace(moniker))
	value = strings.TrimPrefix(value, ".")
	value = strings.ReplaceAll(value, ",version=v", "")
	if before, _, found := strings.Cut(value, "-"); found {
		value = before
	}

	switch {
	case strings.HasPrefix(value, familyNetStandard):
		return newFramework(familyNetStandard, strings.TrimPrefix(value, familyNetStandard))
	case strings.HasPrefix(value, familyNetCoreApp):
		return newFramework(familyNetCoreApp, strings.TrimPrefix(value, familyNetCoreApp))
	case strings.HasPrefix(value, familyNetFramework):
		return newFramework(familyNetFramework, strings.TrimPrefix(value, familyNetFramework))
	case strings.HasPrefix(value, "net"):
		rest := strings.TrimPrefix(value, "net")
		if !strings.Contains(rest, ".") {
			return newFramework(familyNetFramework, rest)
		}
		parsed, ok := newFramework(familyNetCoreApp, rest)
		if ok && parsed.version[0] < firstUnifiedNetMajor {
			parsed.family = familyNetFramework
		}
		return parsed, ok
	default:
		return framework{}, false
	}
}

// newFramework parses "8.0" style versions, or "472" style compact ones.
func newFramework(family, rawVersion string) (framework, bool) {
	if rawVersion == "" {
		return framework{}, false
	}

	var parts []string
	if strings.Contains(rawVersion, ".") {
		parts = strings.Split(rawVersion, ".")
	} else {
		parts = strings.Split(rawVersion, "")
	}

	version := make([]int, 0, len(parts))
	for _, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil {
			return framework{}, false
		}
		version = append(version, number)
	}
	return framework{family: family, version: version}, true
}

func compareFrameworkVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// maxNetStandard returns the highest .NET Standard version a project can consume.
func maxNetStandard(project framework) []int {
	atLeast := func(v ...int) bool { return compareFrameworkVersions(project.version, v) >= 0 }

	switch project.family {
	case familyNetStandard:
		return project.version
	case familyNetCoreApp:
		switch {
		case atLeast(3, 0):
			return []int{2, 1}
		case atLeast(2, 0):
			return []int{2, 0}
		default:
			return []int{1, 6}
		}
	case familyNetFramework:
		switch {
		case atLeast(4, 6, 1):
			return []int{2, 0}
		case atLeast(4, 6):
			return []int{1, 3}
		case atLeast(4, 5, 1):
			return []int{1, 2}
		case atLeast(4, 5):
			return []int{1, 1}
		}
	}
	return nil
}

// consumes reports whether a project targeting project can use an asset built for target.
func consumes(project, target framework) bool {
	if project.family == target.family {
		return compareFrameworkVersions(target.version, project.version) <= 0
	}
	if target.family == familyNetStandard {
		limit := maxNetStandard(project)
		return limit != nil && compareFrameworkVersions(target.version, limit) <= 0
	}
	return false
}

// assetTargetFallback is the .NET Framework version the SDK lets .NET Core
// 2.0+ projects fall back to (net461 through net481) when no group matches.
func assetTargetFallback(project framework) (framework, bool) {
	if project.family != familyNetCoreApp || compareFrameworkVersions(project.version, []int{2, 0}) < 0 {
		return framework{}, false
	}
	return framework{family: familyNetFramework, version: []int{4, 8, 1}}, true
}

// nearestGroup picks the dependency group NuGet would use for tfm: the
// highest compatible group of the project's own family, falling back to the
// highest compatible .NET Standard group and then, for .NET Core 2.0+
// projects, to the highest .NET Framework group up to net481. Unknown project
// monikers match the first group.
func nearestGroup(groups []dependencyGroup, tfm string) (dependencyGroup, bool) {
	project, ok := parseFramework(tfm)
	if !ok {
		if len(groups) > 0 {
			return groups[0], true
		}
		return dependencyGroup{}, false
	}

	if best, found := bestGroup(groups, project); found {
		return best, true
	}
	if fallback, hasFallback := assetTargetFallback(project); hasFallback {
		return bestGroup(groups, fallback)
	}
	return dependencyGroup{}, false
}

func bestGroup(groups []dependencyGroup, project framework) (dependencyGroup, bool) {
	var best dependencyGroup
	var bestFramework framework
	found := false
	for _, group := range groups {
		target, parsed := parseFramework(group.TargetFramework)
		if !parsed || !consumes(project, target) {
			continue
		}
		if !found || betterMatch(project, target, bestFramework) {
			best, bestFramework, found = group, target, true
		}
	}
	return best, found
}

func betterMatch(project, candidate, current framework) bool {
	candidateSame := candidate.family == project.family
	currentSame := current.family == project.family
	if candidateSame != currentSame {
		return candidateSame
	}
	return compareFrameworkVersions(candidate.version, current.version) > 0
}
