package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plin-labs/plin-boot/internal/manifest"
	"github.com/plin-labs/plin-boot/internal/registry"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the application and platform manifests for mistakes",
	Long: `Validate every descriptor of the application manifest and, unless the
application opts out of it, the platform manifest. Each source is checked
against the descriptor schema and for ids or entries declared twice.

Generation itself stays lenient and skips malformed records silently; use
this command to find them.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	store := registry.NewStore(root, logger)

	var sources []*registry.Source
	var user manifest.Manifest
	if c, path, ok := store.LocateUser(); ok {
		src, err := store.LoadSource(c.Kind, path)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		user = src.Manifest
	}
	if registry.IncludesPlatform(user) {
		if c, path, ok := store.LocatePlatform(); ok {
			src, err := store.LoadSource(c.Kind, path)
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}
	}

	if len(sources) == 0 {
		fmt.Fprintf(out, "No manifests found under %s\n", root)
		return nil
	}

	failed := 0
	for _, src := range sources {
		result, err := manifest.Validate(src.Manifest)
		if err != nil {
			return fmt.Errorf("validating %s: %w", src.Path, err)
		}
		if result.Valid {
			fmt.Fprintf(out, "%s: %d descriptors, ok\n", src.Path, len(src.Manifest))
			continue
		}
		failed++
		fmt.Fprintf(out, "%s: %s\n", src.Path, staleColor(fmt.Sprintf("%d problems", len(result.Issues))))
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			fmt.Fprintf(out, "  - %s\n", msg)
		}
	}

	if failed > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
