package runtime

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDispatchRuntime(t *testing.T) {
	tests := []struct {
		command string
		want    []string
	}{
		{"nbb", []string{"nbb"}},
		{"npx nbb", []string{"npx", "nbb"}},
		{`nbb --classpath "src dir"`, []string{"nbb", "--classpath", "src dir"}},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			rt := DispatchRuntime(tt.command)
			p, ok := rt.(*ProcessRuntime)
			if !ok {
				t.Fatalf("DispatchRuntime(%q) returned %T, want *ProcessRuntime", tt.command, rt)
			}
			if !reflect.DeepEqual(p.Argv, tt.want) {
				t.Errorf("Argv = %q, want %q", p.Argv, tt.want)
			}
		})
	}
}

func TestDispatchRuntime_Invalid(t *testing.T) {
	for _, command := range []string{"", "   ", `nbb "unterminated`} {
		rt := DispatchRuntime(command)
		if _, ok := rt.(*unknownRuntime); !ok {
			t.Errorf("DispatchRuntime(%q) returned %T, want *unknownRuntime", command, rt)
			continue
		}
		if _, err := rt.Run(context.Background(), "", ""); err == nil {
			t.Errorf("expected error from runtime for %q", command)
		}
	}
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "boot.sh")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessRuntime_StreamsOutput(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "echo out-line\necho err-line >&2\necho \"$PLIN_ROOT\"\npwd\n")

	var stdout, stderr bytes.Buffer
	rt := &ProcessRuntime{Argv: []string{"sh"}, Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}

	out, err := rt.Run(context.Background(), dir, script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 || lines[0] != "out-line" || lines[1] != dir {
		t.Errorf("stdout = %q", stdout.String())
	}
	if strings.TrimSpace(stderr.String()) != "err-line" {
		t.Errorf("stderr = %q, want err-line", stderr.String())
	}
}

func TestProcessRuntime_NonZeroExit(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "echo failing >&2\nexit 42\n")

	var stderr bytes.Buffer
	rt := &ProcessRuntime{Argv: []string{"sh"}, Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &stderr}

	out, err := rt.Run(context.Background(), dir, script)
	if err != nil {
		t.Fatalf("unexpected error (non-zero exit should not be an error): %v", err)
	}
	if out.ExitCode != 42 {
		t.Errorf("ExitCode = %d, want 42", out.ExitCode)
	}
}

func TestProcessRuntime_HoldInterrupts(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	// The child interrupts this test process, as Ctrl-C would, then exits
	// with its own status.
	script := writeScript(t, dir, "kill -INT $PPID\nsleep 1\nexit 130\n")

	rt := &ProcessRuntime{
		Argv:           []string{"sh"},
		Stdin:          strings.NewReader(""),
		Stdout:         &bytes.Buffer{},
		Stderr:         &bytes.Buffer{},
		HoldInterrupts: true,
	}

	out, err := rt.Run(context.Background(), dir, script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 130 {
		t.Errorf("ExitCode = %d, want 130", out.ExitCode)
	}
}

func TestProcessRuntime_MissingRunner(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "exit 0\n")

	rt := &ProcessRuntime{Argv: []string{"plin-runner-that-does-not-exist"}}
	if _, err := rt.Run(context.Background(), dir, script); err == nil {
		t.Fatal("expected error for missing runner, got nil")
	}
}

func TestProcessRuntime_MissingArtifact(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()

	rt := &ProcessRuntime{Argv: []string{"sh"}}
	if _, err := rt.Run(context.Background(), dir, filepath.Join(dir, "missing.cljs")); err == nil {
		t.Fatal("expected error for missing artifact, got nil")
	}
}

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		key      string
		value    string
		expected []string
	}{
		{
			name:     "add new variable",
			env:      []string{"FOO=bar"},
			key:      "PLIN_ROOT",
			value:    "/app",
			expected: []string{"FOO=bar", "PLIN_ROOT=/app"},
		},
		{
			name:     "replace existing variable",
			env:      []string{"FOO=bar", "PLIN_ROOT=/old"},
			key:      "PLIN_ROOT",
			value:    "/new",
			expected: []string{"FOO=bar", "PLIN_ROOT=/new"},
		},
		{
			name:     "add to empty env",
			env:      nil,
			key:      "KEY",
			value:    "val",
			expected: []string{"KEY=val"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := setEnv(tt.env, tt.key, tt.value)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("setEnv() = %v, want %v", result, tt.expected)
			}
		})
	}
}
