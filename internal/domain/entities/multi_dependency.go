package entities

// MultiDependency groups every package whose version is driven by the same
// build property, so they can be moved together.
type MultiDependency struct {
	PropertyName     string
	TargetFrameworks NameSet
	DependencyNames  NameSet
}

// Equal compares two groups structurally, ignoring case and order.
func (m MultiDependency) Equal(other MultiDependency) bool {
	return SameName(m.PropertyName, other.PropertyName) &&
		m.TargetFrameworks.Equal(other.TargetFrameworks) &&
		m.DependencyNames.Equal(other.DependencyNames)
}

// ResolveMultiDependencyGroups finds the build properties that set the
// target's version and, for each of them, every other package pinned through
// the same property anywhere in the workspace.
//
// propertyBoundDependencies must only contain non-transitive dependencies
// with a root property name (see WorkspaceDiscovery.PropertyBoundDependencies).
// The groups are returned in the order their property was first seen.
func ResolveMultiDependencyGroups(
	projects []Project,
	targetName string,
	propertyBoundDependencies []Dependency,
) []MultiDependency {
	properties := NewNameSet()
	for _, project := range projects {
		for _, dep := range project.Dependencies {
			if dep.IsTransitive || !SameName(dep.Name, targetName) {
				continue
			}
			if property := dep.RootPropertyName(); property != "" {
				properties = properties.With(property)
			}
		}
	}

	groups := make([]MultiDependency, 0, properties.Len())
	for _, property := range properties.Names() {
		frameworks := NewNameSet()
		names := NewNameSet()
		for _, dep := range propertyBoundDependencies {
			if !SameName(dep.RootPropertyName(), property) {
				continue
			}
			for _, tfm := range dep.TargetFrameworks {
				frameworks = frameworks.With(tfm)
			}
			names = names.With(dep.Name)
		}
		groups = append(groups, MultiDependency{
			PropertyName:     property,
			TargetFrameworks: frameworks,
			DependencyNames:  names,
		})
	}
	return groups
}

// UsesMultiDependencyProperty reports whether any group shares its property
// between more than one package.
func UsesMultiDependencyProperty(groups []MultiDependency) bool {
	for _, group := range groups {
		if group.DependencyNames.Len() > 1 {
			return true
		}
	}
	return false
}

// CandidateSet returns the names that must resolve to the same version:
// the union of every group when property sharing is detected, otherwise just
// the target.
func CandidateSet(targetName string, groups []MultiDependency) NameSet {
	if !UsesMultiDependencyProperty(groups) {
		return NewNameSet(targetName)
	}
	names := NewNameSet()
	for _, group := range groups {
		names = names.Union(group.DependencyNames)
	}
	return names
}

// GroupTargetFrameworks returns the union of every group's frameworks.
func GroupTargetFrameworks(groups []MultiDependency) NameSet {
	frameworks := NewNameSet()
	for _, group := range groups {
		frameworks = frameworks.Union(group.TargetFrameworks)
	}
	return frameworks
}
