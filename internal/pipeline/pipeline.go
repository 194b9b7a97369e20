// Package pipeline runs one bootstrap generation: load and merge the
// manifests, filter them for the target environment, render the bootstrap
// and write it under the application root.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/plin-labs/plin-boot/internal/bootgen"
	"github.com/plin-labs/plin-boot/internal/filter"
	"github.com/plin-labs/plin-boot/internal/manifest"
	"github.com/plin-labs/plin-boot/internal/registry"
)

// OutputFile is the bootstrap location relative to the application root.
const OutputFile = "target/server_boot_generated.cljs"

// Options configures a generation run.
type Options struct {
	// Root is the application root every manifest path is relative to.
	Root string
	// Env is the target environment; empty means filter.EnvNode.
	Env string
	// OutputPath overrides <Root>/target/server_boot_generated.cljs.
	OutputPath string
	// Now stamps the generated file; nil means time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
	// DryRun renders without writing.
	DryRun bool
}

// Result describes a completed run.
type Result struct {
	Resolution *registry.Resolution
	Plugins    manifest.Manifest
	Plan       *bootgen.Plan
	Text       string
	OutputPath string
	Written    bool
}

func (o Options) env() string {
	if o.Env == "" {
		return filter.EnvNode
	}
	return o.Env
}

func (o Options) outputPath() string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return filepath.Join(o.Root, filepath.FromSlash(OutputFile))
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Generate performs a full run. A missing platform manifest and an empty
// plugin list are logged as warnings; only read, render and write failures
// are errors. When writing fails no partial file is left behind.
func Generate(opts Options) (*Result, error) {
	log := opts.Logger
	env := opts.env()

	res, err := registry.NewStore(opts.Root, log).Load()
	if err != nil {
		return nil, err
	}

	plugins := filter.Apply(res.Manifest, env)
	if len(plugins) == 0 {
		log.Warn().Str("env", env).Msg("no plugins match the target environment")
	}

	plan := bootgen.NewPlan(env, plugins, res.Manifest)
	for _, d := range plan.Skipped {
		log.Warn().Str("id", d.ID).Str("entry", d.Entry).Msg("skipping plugin with invalid entry namespace")
	}
	text, err := bootgen.Render(plan, opts.now())
	if err != nil {
		return nil, err
	}

	result := &Result{
		Resolution: res,
		Plugins:    plugins,
		Plan:       plan,
		Text:       text,
		OutputPath: opts.outputPath(),
	}
	if opts.DryRun {
		return result, nil
	}

	if err := bootgen.WriteFile(result.OutputPath, text); err != nil {
		return nil, err
	}
	result.Written = true
	log.Debug().Str("path", result.OutputPath).Int("plugins", len(plugins)).Msg("bootstrap written")
	return result, nil
}

// CheckResult reports whether the bootstrap on disk matches what Generate
// would write.
type CheckResult struct {
	*Result
	Exists bool
	Stale  bool
	Diff   string
}

// Check renders without writing and compares against the existing file,
// ignoring the timestamp line. A missing file is stale.
func Check(opts Options) (*CheckResult, error) {
	opts.DryRun = true
	res, err := Generate(opts)
	if err != nil {
		return nil, err
	}

	check := &CheckResult{Result: res}
	data, err := os.ReadFile(res.OutputPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		check.Stale = true
		check.Diff, _, err = bootgen.Stale("", res.Text)
		if err != nil {
			return nil, err
		}
		return check, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", res.OutputPath, err)
	}

	check.Exists = true
	check.Diff, check.Stale, err = bootgen.Stale(string(data), res.Text)
	if err != nil {
		return nil, err
	}
	return check, nil
}
