package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// execute runs the command tree with fresh flag state and an isolated HOME.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	resetFlags(rootCmd)
	noColor = true

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default and clears Changed, which
// pflag otherwise keeps between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v (%T) is not an *ExitError", err, err)
	}
	return exitErr.Code
}

func TestGenerateSummary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"}
 {:id :b :entry "pkg.b" :enabled false}
 {:id :c :entry "pkg.c" :envs [:browser]}]`)

	out, err := execute(t, "--root", root)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	for _, want := range []string{
		"User manifest: " + filepath.Join(root, "plin.edn"),
		"Found 2 plugins for env=node:",
		"  - pkg.a\n",
		"  - pkg.b (disabled)",
		"Initially disabled: [b]",
		"Generated: " + filepath.Join(root, "target", "server_boot_generated.cljs"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "pkg.c") {
		t.Errorf("browser-only plugin listed:\n%s", out)
	}
}

func TestGenerateRejectsArgs(t *testing.T) {
	if _, err := execute(t, "--root", t.TempDir(), "extra"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestGenerateBadRoot(t *testing.T) {
	if _, err := execute(t, "--root", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "--log-level", "loud")
	if code := exitCodeOf(t, err); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"}]`)

	out, err := execute(t, "--root", root, "--check")
	if code := exitCodeOf(t, err); code != 1 {
		t.Errorf("missing file: exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "Missing:") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "target")); !os.IsNotExist(err) {
		t.Error("--check must not write")
	}

	if _, err := execute(t, "--root", root); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "--root", root, "--check")
	if err != nil {
		t.Errorf("fresh file: unexpected error %v", err)
	}
	if !strings.Contains(out, "Up to date:") {
		t.Errorf("output = %q", out)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
	root := t.TempDir()
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"}]`)
	t.Setenv("PLIN_RUNNER", `sh -c "exit 7"`)

	out, err := execute(t, "--root", root, "--run")
	if code := exitCodeOf(t, err); code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if !strings.Contains(out, "Starting server:") {
		t.Errorf("output = %q", out)
	}
}

func TestRunMissingRunner(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"}]`)
	t.Setenv("PLIN_RUNNER", "plin-runner-that-does-not-exist")

	_, err := execute(t, "--root", root, "--run")
	if code := exitCodeOf(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct{ child, want int }{
		{3, 3},
		{1, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.child); got != tt.want {
			t.Errorf("exitCode(%d) = %d, want %d", tt.child, got, tt.want)
		}
	}
}

func TestManifestCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/plinpt/plin.edn", `[{:id :shell :entry "plinpt.p-shell" :envs [:browser]}]`)
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a" :enabled false}]`)

	out, err := execute(t, "manifest", "--root", root, "--output", "json")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	var report manifestReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, out)
	}
	if report.PlatformSource != "repo-src" || !report.IncludePlatform {
		t.Errorf("platform = %q include=%v", report.PlatformSource, report.IncludePlatform)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("entries = %+v", report.Entries)
	}
	if report.Entries[0].Loads || report.Entries[0].ID != "shell" {
		t.Errorf("entries[0] = %+v, want shell not loaded", report.Entries[0])
	}
	if !report.Entries[1].Loads || report.Entries[1].Alias != "pkg_a" {
		t.Errorf("entries[1] = %+v, want pkg.a loaded as pkg_a", report.Entries[1])
	}
	if len(report.DisabledIDs) != 1 || report.DisabledIDs[0] != "a" {
		t.Errorf("initially_disabled = %v", report.DisabledIDs)
	}

	out, err = execute(t, "manifest", "--root", root)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	var generic map[string]any
	if err := yaml.Unmarshal([]byte(out), &generic); err != nil {
		t.Fatalf("decoding YAML: %v\n%s", err, out)
	}
	if generic["env"] != "node" {
		t.Errorf("env = %v, want node", generic["env"])
	}
	if _, err := os.Stat(filepath.Join(root, "target")); !os.IsNotExist(err) {
		t.Error("manifest command must not write")
	}
}

func TestManifestBadFormat(t *testing.T) {
	_, err := execute(t, "manifest", "--root", t.TempDir(), "--output", "xml")
	if code := exitCodeOf(t, err); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestValidateCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"}]`)
	out, err := execute(t, "validate", "--root", root)
	if err != nil {
		t.Fatalf("valid manifest: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 descriptors, ok") {
		t.Errorf("output = %q", out)
	}

	writeFile(t, root, "plin.edn", `[{:id :a :entry "pkg.a"} {:id :a :entry "pkg.other"}]`)
	out, err = execute(t, "validate", "--root", root)
	if code := exitCodeOf(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "/1/id") {
		t.Errorf("duplicate id not reported:\n%s", out)
	}
}

func TestCreateCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")
	out, err := execute(t, "create", "demo", "--output-dir", outDir)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "Created demo") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "manifest.edn")); err != nil {
		t.Errorf("manifest.edn not created: %v", err)
	}

	if _, err := execute(t, "create", "Bad_Name"); err == nil {
		t.Error("expected error for invalid name")
	}
}

func TestConfigCommands(t *testing.T) {
	out, err := execute(t, "config", "get", "runner")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "nbb" {
		t.Errorf("runner = %q, want nbb", out)
	}

	if _, err := execute(t, "config", "set", "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version = %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-10-01"
	t.Setenv("PLIN_RUNNER", "npx nbb")

	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info buildInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := buildInfo{Version: "1.2.3", Commit: "abc123", Built: "2026-10-01", Runner: "npx nbb"}
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}
