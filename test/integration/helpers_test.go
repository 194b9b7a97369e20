//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME, so user settings never leak in
	AppDir  string // the application root generation runs against
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		AppDir:  filepath.Join(t.TempDir(), "demo-app"),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// setupPlatform installs a synthetic plin-platform package under
// appDir/node_modules with the given version.
func setupPlatform(t *testing.T, appDir, version string) string {
	t.Helper()

	pkgDir := filepath.Join(appDir, "node_modules", "plin-platform")
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{"name": "plin-platform", "version": "`+version+`"}`)
	writeFile(t, filepath.Join(pkgDir, "src", "plinpt", "plin.edn"), `;; platform plugins
[{:id :plin-boot :entry "plin.boot"}

 {:id :app-shell
  :entry "plinpt.p-app-shell"
  :envs [:browser]}

 {:id :server
  :entry "plinpt.p-server"
  :envs [:node]}

 {:id :devtools
  :entry "plinpt.p-devtools"
  :modes [:dev]
  :enabled false}

 {:id :styles :type :css :files ["public/styles.css"]}]
`)
	return pkgDir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q", path, substr)
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s should not contain %q", path, substr)
	}
}
