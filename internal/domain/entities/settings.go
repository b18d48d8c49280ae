package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFeed           = "nuget"
	DefaultSource         = "https://api.nuget.org/v3/index.json"
	DefaultTimeout        = 30 * time.Second
	DefaultRetryMax       = 3
	DefaultConcurrency    = 4
	DefaultAnalysisFolder = ".dependabot/analysis"
	defaultCacheDirName   = "depanalyzer"
)

// Settings is the top-level configuration for depanalyzer.
type Settings struct {
	Feed        string `yaml:"feed"         hcl:"feed,optional"`         // Feed type, "nuget"
	Source      string `yaml:"source"       hcl:"source,optional"`       // NuGet v3 service index URL
	Token       string `yaml:"token"        hcl:"token,optional"`        // Inline, ${ENV_VAR}, or file path
	CacheDir    string `yaml:"cache_dir"    hcl:"cache_dir,optional"`    // Package metadata cache
	Timeout     string `yaml:"timeout"      hcl:"timeout,optional"`      // Per-request timeout, e.g. "30s"
	RetryMax    int    `yaml:"retry_max"    hcl:"retry_max,optional"`    // HTTP retries per request
	Concurrency int    `yaml:"concurrency"  hcl:"concurrency,optional"` // Parallel analyses in batch mode
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file. Files ending in ".hcl"
// are decoded as HCL, everything else as YAML.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		if decodeErr := hclsimple.Decode(path, data, hclEvalContext(), &settings); decodeErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", decodeErr)
		}
	} else if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = resolveToken(settings.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// RequestTimeout returns the parsed timeout, or the default when unset.
func (s *Settings) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil || timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depanalyzer.yaml",
		".depanalyzer.yml",
		".depanalyzer.hcl",
		"depanalyzer.yaml",
		"depanalyzer.yml",
		"depanalyzer.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) applyDefaults() {
	if s.Feed == "" {
		s.Feed = DefaultFeed
	}
	if s.Source == "" {
		s.Source = DefaultSource
	}
	if s.CacheDir == "" {
		s.CacheDir = defaultCacheDir()
	}
	if s.Timeout == "" {
		s.Timeout = DefaultTimeout.String()
	}
	if s.RetryMax == 0 {
		s.RetryMax = DefaultRetryMax
	}
	if s.Concurrency <= 0 {
		s.Concurrency = DefaultConcurrency
	}
}

func (s *Settings) validate() error {
	if !strings.HasPrefix(s.Source, "http://") && !strings.HasPrefix(s.Source, "https://") {
		return fmt.Errorf("source must be an http(s) URL, got %q", s.Source)
	}
	if _, err := time.ParseDuration(s.Timeout); err != nil {
		return fmt.Errorf("timeout %q is not a valid duration: %w", s.Timeout, err)
	}
	if s.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", s.RetryMax)
	}
	return nil
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, defaultCacheDirName)
	}
	return filepath.Join(os.TempDir(), defaultCacheDirName)
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// hclEvalContext exposes env("NAME") to HCL config files.
func hclEvalContext() *hcl.EvalContext {
	envFunc := function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(os.Getenv(args[0].AsString())), nil
		},
	})

	return &hcl.EvalContext{
		Functions: map[string]function.Function{"env": envFunc},
	}
}
