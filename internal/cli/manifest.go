package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/plin-labs/plin-boot/internal/filter"
	"github.com/plin-labs/plin-boot/internal/manifest"
	"github.com/plin-labs/plin-boot/internal/pipeline"
)

var manifestOutput string

func init() {
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the merged manifest and what the server bootstrap would load",
	Long: `Resolve the platform and application manifests exactly as generation does
and print every merged entry with its load decision for the server
environment. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runManifest,
}

type manifestEntry struct {
	manifest.Descriptor `yaml:",inline"`
	Directive           bool   `yaml:"directive,omitempty" json:"directive,omitempty"`
	Loads               bool   `yaml:"loads" json:"loads"`
	Alias               string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

type manifestReport struct {
	Root            string          `yaml:"root" json:"root"`
	Env             string          `yaml:"env" json:"env"`
	UserManifest    string          `yaml:"user_manifest,omitempty" json:"user_manifest,omitempty"`
	PlatformSource  string          `yaml:"platform_source,omitempty" json:"platform_source,omitempty"`
	PlatformPath    string          `yaml:"platform_manifest,omitempty" json:"platform_manifest,omitempty"`
	IncludePlatform bool            `yaml:"include_platform" json:"include_platform"`
	Entries         []manifestEntry `yaml:"entries" json:"entries"`
	DisabledIDs     []string        `yaml:"initially_disabled" json:"initially_disabled"`
}

func runManifest(cmd *cobra.Command, args []string) error {
	if manifestOutput != "yaml" && manifestOutput != "json" {
		return &ExitError{Code: 2, Message: fmt.Sprintf("--output must be 'yaml' or 'json', got %q", manifestOutput)}
	}
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	res, err := pipeline.Generate(pipeline.Options{Root: root, Logger: logger, DryRun: true})
	if err != nil {
		return err
	}
	return writeManifestReport(cmd.OutOrStdout(), buildManifestReport(root, res), manifestOutput)
}

func buildManifestReport(root string, res *pipeline.Result) manifestReport {
	aliases := make(map[string]string, len(res.Plan.Imports))
	for _, imp := range res.Plan.Imports {
		aliases[imp.Namespace] = imp.Alias
	}

	report := manifestReport{
		Root:            root,
		Env:             res.Plan.Env,
		IncludePlatform: res.Resolution.IncludePlatform,
		Entries:         make([]manifestEntry, 0, len(res.Resolution.Manifest)),
		DisabledIDs:     res.Plan.DisabledIDs,
	}
	if u := res.Resolution.User; u != nil {
		report.UserManifest = u.Path
	}
	if p := res.Resolution.Platform; p != nil {
		report.PlatformSource = string(p.Kind)
		report.PlatformPath = p.Path
	}

	for _, d := range res.Resolution.Manifest {
		e := manifestEntry{
			Descriptor: d,
			Directive:  d.IsDirective(),
			Loads:      filter.ShouldLoad(d, res.Plan.Env),
		}
		if e.Loads {
			e.Alias = aliases[d.Entry]
		}
		report.Entries = append(report.Entries, e)
	}
	return report
}

func writeManifestReport(w io.Writer, report manifestReport, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding manifest as JSON: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding manifest as YAML: %w", err)
	}
	return enc.Close()
}
