package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return nil // Settings depend on --config, so controllers load them at execution time
}

// LoadSettings loads the config file at path or, when path is empty, the
// auto-detected one, falling back to defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			return DefaultSettings(), nil //nolint:nilerr // a missing config file means defaults
		}
		path = found
	}
	return NewSettings(path)
}
