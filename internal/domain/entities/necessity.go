package entities

// IsUpdateNecessary decides whether the target dependency is worth analyzing.
//
// Behaviour:
//   - No referencing project: never necessary.
//   - Vulnerable: always necessary, even when only referenced transitively,
//     because the fix has to flow through the dependency chain.
//   - Otherwise: necessary only when some project declares it directly.
func IsUpdateNecessary(target DependencyInfo, referencingProjects []Project) bool {
	if len(referencingProjects) == 0 {
		return false
	}
	if target.IsVulnerable {
		return true
	}

	for _, project := range referencingProjects {
		for _, dep := range project.Dependencies {
			if SameName(dep.Name, target.Name) && !dep.IsTransitive {
				return true
			}
		}
	}
	return false
}
