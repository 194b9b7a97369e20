// Package config manages user settings stored at ~/.plin/config.yaml,
// overridable through PLIN_* environment variables.
package config
