package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plin-labs/plin-boot/internal/branding"
	"github.com/plin-labs/plin-boot/internal/scaffold"
)

var createOutputDir string

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new " + branding.DisplayName() + " application",
	Long: `Create a new application with package.json, nbb.edn, a manifest.edn
declaring one plugin and the plugin's source namespace.

Examples:
  ` + branding.CLIName() + ` create my-app
  ` + branding.CLIName() + ` create my-app --output-dir ./apps/my-app`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := scaffold.ValidateName(name); err != nil {
			return err
		}

		result, err := scaffold.Generate(scaffold.NewAppData(name), resolveOutputDir(name))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s at %s/\n", name, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
		}
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintf(out, "  cd %s\n", result.OutputDir)
		fmt.Fprintln(out, "  npm install")
		fmt.Fprintf(out, "  %s --run\n", branding.CLIName())
		return nil
	},
}

func resolveOutputDir(name string) string {
	if createOutputDir != "" {
		return createOutputDir
	}
	return filepath.Join(".", name)
}
