package runtime

import (
	"context"
	"fmt"

	"github.com/mattn/go-shellwords"
)

// Runtime executes a generated artifact.
type Runtime interface {
	// Run executes artifact with dir as the working directory and waits for
	// it to exit.
	Run(ctx context.Context, dir, artifact string) (*Output, error)
}

// Output captures the result of an execution. Output streams are not
// captured; they go straight to the configured writers.
type Output struct {
	ExitCode int
}

// DefaultRunner is the runner command used when none is configured.
const DefaultRunner = "nbb"

// DispatchRuntime returns the Runtime for a runner command line such as
// "nbb" or "npx nbb --classpath src". The artifact path is appended as
// the last argument. Returns an error-producing runtime when the command
// cannot be parsed or is empty.
func DispatchRuntime(command string) Runtime {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return &unknownRuntime{command: command, err: err}
	}
	if len(argv) == 0 {
		return &unknownRuntime{command: command}
	}
	return &ProcessRuntime{Argv: argv}
}

// unknownRuntime is returned when the runner command is not usable.
type unknownRuntime struct {
	command string
	err     error
}

func (u *unknownRuntime) Run(_ context.Context, _, _ string) (*Output, error) {
	if u.err != nil {
		return nil, fmt.Errorf("invalid runner command %q: %w", u.command, u.err)
	}
	return nil, fmt.Errorf("invalid runner command %q: no program given", u.command)
}
