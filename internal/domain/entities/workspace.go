package entities

// DependencyType identifies how a dependency was declared in a project.
type DependencyType string

const (
	DependencyTypeUnknown          DependencyType = "Unknown"
	DependencyTypePackageReference DependencyType = "PackageReference"
	DependencyTypePackageVersion   DependencyType = "PackageVersion"
	DependencyTypePackagesConfig   DependencyType = "PackagesConfig"
	DependencyTypeGlobalPackage    DependencyType = "GlobalPackageReference"
)

// EvaluationResult describes how a dependency version was evaluated from the
// build files, including the property that ultimately supplied it.
type EvaluationResult struct {
	ResultType       string `json:"ResultType"`
	OriginalValue    string `json:"OriginalValue"`
	EvaluatedValue   string `json:"EvaluatedValue"`
	RootPropertyName string `json:"RootPropertyName,omitempty"`
	ErrorMessage     string `json:"ErrorMessage,omitempty"`
}

// Dependency is a package declared by, or resolved for, a project.
type Dependency struct {
	Name             string            `json:"Name"`
	Version          string            `json:"Version,omitempty"`
	Type             DependencyType    `json:"Type"`
	EvaluationResult *EvaluationResult `json:"EvaluationResult,omitempty"`
	TargetFrameworks []string          `json:"TargetFrameworks,omitempty"`
	IsDirect         bool              `json:"IsDirect"`
	IsTransitive     bool              `json:"IsTransitive"`
	InfoURL          string            `json:"InfoUrl,omitempty"`
}

// RootPropertyName returns the build property that set the version, or "".
func (d Dependency) RootPropertyName() string {
	if d.EvaluationResult == nil {
		return ""
	}
	return d.EvaluationResult.RootPropertyName
}

// WithTransitive returns a copy of the dependency with the transitivity flag replaced.
func (d Dependency) WithTransitive(transitive bool) Dependency {
	d.TargetFrameworks = cloneStrings(d.TargetFrameworks)
	d.IsTransitive = transitive
	return d
}

// WithInfoURL returns a copy of the dependency pointing at the given info URL.
func (d Dependency) WithInfoURL(url string) Dependency {
	d.TargetFrameworks = cloneStrings(d.TargetFrameworks)
	d.InfoURL = url
	return d
}

// Project is a single build project found by discovery.
type Project struct {
	FilePath               string       `json:"FilePath"`
	TargetFrameworks       []string     `json:"TargetFrameworks"`
	ReferencedProjectPaths []string     `json:"ReferencedProjectPaths,omitempty"`
	Dependencies           []Dependency `json:"Dependencies"`
}

// References reports whether the project has any dependency with the given name.
func (p Project) References(name string) bool {
	for _, dep := range p.Dependencies {
		if SameName(dep.Name, name) {
			return true
		}
	}
	return false
}

// ReferencesAny reports whether the project has a dependency in names.
func (p Project) ReferencesAny(names NameSet) bool {
	for _, dep := range p.Dependencies {
		if names.Contains(dep.Name) {
			return true
		}
	}
	return false
}

// WorkspaceDiscovery is the snapshot produced by the discovery stage.
type WorkspaceDiscovery struct {
	Path      string    `json:"Path"`
	IsSuccess bool      `json:"IsSuccess"`
	Projects  []Project `json:"Projects"`
}

// ProjectsReferencing returns the projects that reference the dependency name.
func (w WorkspaceDiscovery) ProjectsReferencing(name string) []Project {
	var projects []Project
	for _, project := range w.Projects {
		if project.References(name) {
			projects = append(projects, project)
		}
	}
	return projects
}

// ProjectsReferencingAny returns the projects that reference any of names.
func (w WorkspaceDiscovery) ProjectsReferencingAny(names NameSet) []Project {
	var projects []Project
	for _, project := range w.Projects {
		if project.ReferencesAny(names) {
			projects = append(projects, project)
		}
	}
	return projects
}

// PropertyBoundDependencies returns every non-transitive dependency whose
// version comes from a build property.
func (w WorkspaceDiscovery) PropertyBoundDependencies() []Dependency {
	var deps []Dependency
	for _, project := range w.Projects {
		for _, dep := range project.Dependencies {
			if !dep.IsTransitive && dep.RootPropertyName() != "" {
				deps = append(deps, dep)
			}
		}
	}
	return deps
}

// TargetFrameworksOf returns the union of the target frameworks of projects.
func TargetFrameworksOf(projects []Project) NameSet {
	frameworks := NewNameSet()
	for _, project := range projects {
		for _, tfm := range project.TargetFrameworks {
			frameworks = frameworks.With(tfm)
		}
	}
	return frameworks
}

// SecurityVulnerability lists the version requirements affected by an advisory.
type SecurityVulnerability struct {
	DependencyName     string   `json:"DependencyName"`
	PackageManager     string   `json:"PackageManager"`
	VulnerableVersions []string `json:"VulnerableVersions"`
	SafeVersions       []string `json:"SafeVersions"`
}

// DependencyInfo is the dependency targeted for an update.
type DependencyInfo struct {
	Name            string                  `json:"Name"`
	Version         string                  `json:"Version"`
	IsVulnerable    bool                    `json:"IsVulnerable"`
	IgnoredVersions []string                `json:"IgnoredVersions,omitempty"`
	Vulnerabilities []SecurityVulnerability `json:"Vulnerabilities,omitempty"`
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}
