package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plin-labs/plin-boot/internal/branding"
	"github.com/plin-labs/plin-boot/internal/config"
	"github.com/plin-labs/plin-boot/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootDir  string
	logLevel string
	noColor  bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` plugins are declared in EDN manifests. The server runtime cannot
require namespaces by name at load time, so ` + branding.CLIName() + ` reads the platform and
application manifests, keeps the plugins that load on the server and writes
a bootstrap file that requires each of them statically.

Run without a subcommand to regenerate target/server_boot_generated.cljs.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Application root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// setup loads user settings and builds the diagnostic logger. Flags take
// precedence over PLIN_* variables, which take precedence over the config
// file.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}

	level := config.LogLevel()
	if logLevel != "" {
		level = logLevel
	}
	if noColor || config.NoColor() {
		color.NoColor = true
	}

	l, err := logging.New(cmd.ErrOrStderr(), level, color.NoColor)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger = l
	return nil
}

// resolveRoot returns the absolute application root. A leading ~ in
// --root is expanded.
func resolveRoot() (string, error) {
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return wd, nil
	}
	expanded, err := homedir.Expand(rootDir)
	if err != nil {
		return "", fmt.Errorf("expanding root %s: %w", rootDir, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", rootDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", abs)
	}
	return abs, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
