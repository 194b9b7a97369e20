package bootgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// WriteFile writes text to path, creating parent directories. The content
// goes to a temporary file in the same directory that is renamed over path,
// so a failed write never leaves a partial bootstrap behind.
func WriteFile(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Stale compares an existing bootstrap with a freshly rendered one,
// ignoring the timestamp line. When they differ it returns a unified diff
// from existing to fresh.
func Stale(existing, fresh string) (string, bool, error) {
	a := maskTimestamp(existing)
	b := maskTimestamp(fresh)
	if a == b {
		return "", false, nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "current",
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		return "", true, fmt.Errorf("diffing bootstrap: %w", err)
	}
	return diff, true, nil
}

func maskTimestamp(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), timestampPrefix) {
			lines[i] = timestampPrefix
		}
	}
	return strings.Join(lines, "\n")
}
