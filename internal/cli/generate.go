package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plin-labs/plin-boot/internal/config"
	"github.com/plin-labs/plin-boot/internal/pipeline"
	"github.com/plin-labs/plin-boot/internal/runtime"
)

var (
	generateRun   bool
	generateCheck bool
)

var (
	headingColor  = color.New(color.Bold).SprintFunc()
	disabledColor = color.New(color.FgYellow).SprintFunc()
	pathColor     = color.New(color.FgCyan).SprintFunc()
	staleColor    = color.New(color.FgRed).SprintFunc()
)

func init() {
	rootCmd.Flags().BoolVar(&generateRun, "run", false, "Execute the generated bootstrap after writing it")
	rootCmd.Flags().BoolVar(&generateCheck, "check", false, "Fail if the bootstrap on disk is missing or out of date; write nothing")
	rootCmd.MarkFlagsMutuallyExclusive("run", "check")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	opts := pipeline.Options{Root: root, Logger: logger}
	out := cmd.OutOrStdout()

	if generateCheck {
		return runCheck(out, opts)
	}

	fmt.Fprintln(out, "Generating server boot script...")
	res, err := pipeline.Generate(opts)
	if err != nil {
		return err
	}
	printSummary(out, res)

	if !generateRun {
		return nil
	}
	return runBootstrap(cmd, root, res.OutputPath)
}

func printSummary(w io.Writer, res *pipeline.Result) {
	if res.Resolution.User != nil {
		fmt.Fprintf(w, "User manifest: %s\n", pathColor(res.Resolution.User.Path))
	}
	if res.Resolution.Platform != nil {
		fmt.Fprintf(w, "Platform manifest: %s\n", pathColor(res.Resolution.Platform.Path))
	}
	if v := res.Resolution.PlatformVersion; v != nil && v.Installed != "" {
		fmt.Fprintf(w, "Platform version: %s\n", v.Installed)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingColor(fmt.Sprintf("Found %d plugins for env=%s:", len(res.Plugins), res.Plan.Env)))
	for _, p := range res.Plugins {
		line := "  - " + p.Label()
		if p.ExplicitlyDisabled() {
			line += " " + disabledColor("(disabled)")
		}
		fmt.Fprintln(w, line)
	}

	if len(res.Plan.DisabledIDs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Initially disabled: %v\n", res.Plan.DisabledIDs)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", pathColor(res.OutputPath))
}

func runCheck(w io.Writer, opts pipeline.Options) error {
	check, err := pipeline.Check(opts)
	if err != nil {
		return err
	}
	if !check.Stale {
		fmt.Fprintf(w, "Up to date: %s\n", pathColor(check.OutputPath))
		return nil
	}

	if !check.Exists {
		fmt.Fprintf(w, "%s %s does not exist\n", staleColor("Missing:"), check.OutputPath)
	} else {
		fmt.Fprintf(w, "%s %s\n", staleColor("Out of date:"), check.OutputPath)
	}
	fmt.Fprint(w, check.Diff)
	return &ExitError{Code: 1}
}

// runBootstrap hands the generated file to the configured runner with the
// terminal attached. The runner's exit status becomes ours.
func runBootstrap(cmd *cobra.Command, root, artifact string) error {
	runner := config.Runner()
	rel, err := filepath.Rel(root, artifact)
	if err != nil {
		rel = artifact
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Starting server: %s %s\n", runner, rel)
	fmt.Fprintln(out)

	rt := runtime.DispatchRuntime(runner)
	if p, ok := rt.(*runtime.ProcessRuntime); ok {
		p.Stdin = cmd.InOrStdin()
		p.Stdout = out
		p.Stderr = cmd.ErrOrStderr()
		p.HoldInterrupts = true
	}

	result, err := rt.Run(context.Background(), root, artifact)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: exitCode(result.ExitCode)}
	}
	return nil
}

// exitCode maps a child status to ours; a child killed by a signal
// reports -1.
func exitCode(child int) int {
	if child <= 0 {
		return 1
	}
	return child
}
