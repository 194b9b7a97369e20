package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plin-labs/plin-boot/internal/branding"
	"github.com/plin-labs/plin-boot/internal/config"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo is the --json shape of the version command.
type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Runner  string `json:"runner"`
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and runner details as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build of " + branding.CLIName() + " and the configured runner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildInfo{
			Version: buildVersion,
			Commit:  buildCommit,
			Built:   buildDate,
			Runner:  config.Runner(),
		}
		out := cmd.OutOrStdout()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
		default:
			fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.CLIName(), info.Version, info.Commit, info.Built)
			fmt.Fprintf(out, "runner: %s\n", info.Runner)
		}
		return nil
	},
}
