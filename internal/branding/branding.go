// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into
// the binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	PlatformPackage string `yaml:"platform_package"`
	DefaultRunner   string `yaml:"default_runner"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:         "plin-boot",
			DisplayName:     "PLIN",
			Description:     "Resolve PLIN plugin manifests and generate the server bootstrap",
			HomeDir:         ".plin",
			EnvPrefix:       "PLIN",
			PlatformPackage: "plin-platform",
			DefaultRunner:   "nbb",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "plin-boot").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "PLIN").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".plin").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PLIN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PlatformPackage returns the npm package that ships the platform manifest.
func PlatformPackage() string { load(); return defaults.PlatformPackage }

// DefaultRunner returns the runner command used when none is configured.
func DefaultRunner() string { load(); return defaults.DefaultRunner }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "PLIN_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
