package entities

// AnalysisResult is the record handed to the rewrite stage.
type AnalysisResult struct {
	UpdatedVersion                          string       `json:"UpdatedVersion"`
	CanUpdate                               bool         `json:"CanUpdate"`
	VersionComesFromMultiDependencyProperty bool         `json:"VersionComesFromMultiDependencyProperty"`
	UpdatedDependencies                     []Dependency `json:"UpdatedDependencies"`
}

// NoUpdate builds the result for a dependency that stays where it is.
func NoUpdate(currentVersion string, fromMultiDependency bool) AnalysisResult {
	return AnalysisResult{
		UpdatedVersion:                          currentVersion,
		CanUpdate:                               false,
		VersionComesFromMultiDependencyProperty: fromMultiDependency,
		UpdatedDependencies:                     []Dependency{},
	}
}
