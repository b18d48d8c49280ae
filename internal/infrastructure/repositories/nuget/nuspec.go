package nuget

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type nuspec struct {
	Metadata nuspecMetadata `xml:"metadata"`
}

type nuspecMetadata struct {
	ID           string             `xml:"id"`
	Version      string             `xml:"version"`
	ProjectURL   string             `xml:"projectUrl"`
	Repository   nuspecRepository   `xml:"repository"`
	Dependencies nuspecDependencies `xml:"dependencies"`
}

type nuspecRepository struct {
	Type string `xml:"type,attr"`
	URL  string `xml:"url,attr"`
}

type nuspecDependencies struct {
	Groups       []dependencyGroup  `xml:"group"`
	Dependencies []nuspecDependency `xml:"dependency"` // legacy, framework-agnostic
}

type dependencyGroup struct {
	TargetFramework string             `xml:"targetFramework,attr"`
	Dependencies    []nuspecDependency `xml:"dependency"`
}

type nuspecDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

func parseNuspec(data []byte) (*nuspec, error) {
	var spec nuspec
	if err := xml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse nuspec: %w", err)
	}
	return &spec, nil
}

// frameworkGroups returns the groups that name a target framework.
func (m nuspecMetadata) frameworkGroups() []dependencyGroup {
	var groups []dependencyGroup
	for _, group := range m.Dependencies.Groups {
		if strings.TrimSpace(group.TargetFramework) != "" {
			groups = append(groups, group)
		}
	}
	return groups
}

// anyGroup returns the dependencies that apply to every framework.
func (m nuspecMetadata) anyGroup() []nuspecDependency {
	deps := append([]nuspecDependency(nil), m.Dependencies.Dependencies...)
	for _, group := range m.Dependencies.Groups {
		if strings.TrimSpace(group.TargetFramework) == "" {
			deps = append(deps, group.Dependencies...)
		}
	}
	return deps
}

// supports reports whether the package can be consumed by a project
// targeting tfm. Packages that do not split dependencies per framework
// are treated as framework-agnostic.
func (m nuspecMetadata) supports(tfm string) bool {
	groups := m.frameworkGroups()
	if len(groups) == 0 {
		return true
	}
	_, ok := nearestGroup(groups, tfm)
	return ok || hasUntargetedGroup(m)
}

// dependenciesFor returns the dependencies a project targeting tfm pulls in.
func (m nuspecMetadata) dependenciesFor(tfm string) []nuspecDependency {
	if group, ok := nearestGroup(m.frameworkGroups(), tfm); ok {
		return group.Dependencies
	}
	return m.anyGroup()
}

func hasUntargetedGroup(m nuspecMetadata) bool {
	for _, group := range m.Dependencies.Groups {
		if strings.TrimSpace(group.TargetFramework) == "" {
			return true
		}
	}
	return false
}

// lowerBound returns the lower bound of a NuGet version range and whether it
// is exclusive. A bare version is an inclusive minimum. Ranges without a
// lower bound resolve to "".
func lowerBound(versionRange string) (string, bool) {
	value := strings.TrimSpace(versionRange)
	if value == "" {
		return "", false
	}
	if !strings.ContainsAny(value[:1], "[(") {
		return value, false
	}

	inner := strings.Trim(value, "[]() ")
	lower, _, _ := strings.Cut(inner, ",")
	lower = strings.TrimSpace(lower)
	return lower, lower != "" && value[0] == '('
}

// floatingFloor turns a floating version ("1.*", "1.2.0-*") into the lowest
// version it can float to. The second result reports a floating label.
func floatingFloor(version string) (string, bool) {
	before, _, found := strings.Cut(version, "*")
	if !found {
		return version, false
	}
	prerelease := strings.HasSuffix(before, "-")
	return strings.TrimRight(before, ".-"), prerelease
}
