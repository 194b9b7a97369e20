package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/plin-labs/plin-boot/internal/branding"
	"github.com/plin-labs/plin-boot/internal/manifest"
)

// namePattern is what an application name must look like to double as a
// namespace segment and an npm package name.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// dirPlaceholder is replaced by AppData.Dir in template paths.
const dirPlaceholder = "_ns_"

// manifestFile is the user manifest written by the app template.
const manifestFile = "manifest.edn"

// AppData holds all template variables available to the app templates.
type AppData struct {
	Name            string // e.g., "my-app"
	Title           string // e.g., "My App"
	Dir             string // source directory for the namespace, e.g., "my_app"
	Version         string
	PlatformPackage string
	PlatformRange   string
	NbbRange        string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir
	Warnings  []string
}

// ValidateName reports whether name is usable as an application name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must be lowercase letters, digits and hyphens, starting with a letter", name)
	}
	return nil
}

// NewAppData creates AppData with derived fields populated.
func NewAppData(name string) *AppData {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return &AppData{
		Name:            name,
		Title:           strings.Join(words, " "),
		Dir:             strings.ReplaceAll(name, "-", "_"),
		Version:         "0.1.0",
		PlatformPackage: branding.PlatformPackage(),
		PlatformRange:   "^0.1.0",
		NbbRange:        "^1.3.205",
	}
}

// Generate writes a new application into outputDir, which must not exist
// or be empty. The generated manifest is parsed and validated; problems are
// returned as warnings.
func Generate(data *AppData, outputDir string) (*Result, error) {
	const root = "templates/app"

	if entries, err := os.ReadDir(outputDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		rel = strings.TrimSuffix(rel, ".tmpl")
		rel = strings.ReplaceAll(rel, dirPlaceholder, data.Dir)

		tmplBytes, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", p, err)
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	valResult, err := manifest.ValidateFile(filepath.Join(outputDir, manifestFile))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}
