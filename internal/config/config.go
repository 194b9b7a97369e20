package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/plin-labs/plin-boot/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyRunner   = "runner"
	KeyLogLevel = "log_level"
	KeyNoColor  = "no_color"
)

var defaults = map[string]any{
	KeyRunner:   branding.DefaultRunner(),
	KeyLogLevel: "info",
	KeyNoColor:  false,
}

// Dir returns the path to the config directory (~/.plin/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.plin/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; a malformed one is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Keys returns the known configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkKey(key string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns a config value by key.
func Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return viper.GetString(key), nil
}

// Runner returns the command used to execute the generated bootstrap.
func Runner() string { return viper.GetString(KeyRunner) }

// LogLevel returns the configured diagnostic log level.
func LogLevel() string { return viper.GetString(KeyLogLevel) }

// NoColor reports whether colored output is disabled.
func NoColor() bool { return viper.GetBool(KeyNoColor) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
