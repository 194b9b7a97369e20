package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
)

// ProcessRuntime runs the artifact as a child process.
type ProcessRuntime struct {
	// Argv is the runner program and its leading arguments.
	Argv []string

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HoldInterrupts keeps this process alive on SIGINT while the child
	// runs. The terminal delivers the interrupt to the child as well, so
	// its exit status is still collected.
	HoldInterrupts bool
}

// Run executes `<argv...> <artifact>` in dir. PLIN_ROOT and PLIN_BOOT_FILE
// are set in the child's environment. A non-zero exit is reported through
// Output.ExitCode, not as an error; failing to start the program is an
// error.
func (p *ProcessRuntime) Run(ctx context.Context, dir, artifact string) (*Output, error) {
	if len(p.Argv) == 0 {
		return nil, fmt.Errorf("no runner program configured")
	}

	bin, err := exec.LookPath(p.Argv[0])
	if err != nil {
		return nil, fmt.Errorf("runner %q not found: %w", p.Argv[0], err)
	}

	if _, err := os.Stat(artifact); err != nil {
		return nil, fmt.Errorf("bootstrap file not found at %s: %w", artifact, err)
	}

	args := append(append([]string{}, p.Argv[1:]...), artifact)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = buildEnv(dir, artifact)
	cmd.Stdin = p.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = p.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if p.HoldInterrupts {
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Output{ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("executing %s: %w", filepath.Base(bin), err)
	}
	return &Output{ExitCode: 0}, nil
}

// buildEnv inherits the current environment and adds the bootstrap
// locations.
func buildEnv(dir, artifact string) []string {
	env := os.Environ()
	env = setEnv(env, "PLIN_ROOT", dir)
	env = setEnv(env, "PLIN_BOOT_FILE", artifact)
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
