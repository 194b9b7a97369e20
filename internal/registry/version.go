package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// VersionReport compares the installed plin-platform package against the
// range the application declares in its package.json.
type VersionReport struct {
	Installed  string
	Constraint string
	// Satisfied is false only when both versions parse and the installed
	// version falls outside the declared range.
	Satisfied bool
}

type packageJSON struct {
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readPackageJSON(path string) (*packageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// checkPlatformVersion never fails generation: unreadable package files and
// npm ranges semver cannot parse (tags, file: or git: specs) are skipped.
func (s *Store) checkPlatformVersion() *VersionReport {
	report := &VersionReport{Satisfied: true}

	installedPath := filepath.Join(s.Root, "node_modules", platformPackage, "package.json")
	installed, err := readPackageJSON(installedPath)
	if err != nil {
		s.Logger.Debug().Err(err).Str("path", installedPath).Msg("cannot read installed platform package")
		return report
	}
	report.Installed = installed.Version

	app, err := readPackageJSON(filepath.Join(s.Root, "package.json"))
	if err != nil {
		s.Logger.Debug().Err(err).Msg("cannot read application package.json")
		return report
	}
	report.Constraint = app.Dependencies[platformPackage]
	if report.Constraint == "" {
		report.Constraint = app.DevDependencies[platformPackage]
	}
	if report.Constraint == "" || report.Installed == "" {
		return report
	}

	report.Satisfied = satisfies(report.Installed, report.Constraint)
	if !report.Satisfied {
		s.Logger.Warn().
			Str("installed", report.Installed).
			Str("required", report.Constraint).
			Msg("installed " + platformPackage + " does not satisfy package.json")
	}
	return report
}

// satisfies reports whether version is inside constraint. Anything that
// does not parse counts as satisfied.
func satisfies(version, constraint string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return true
	}
	return c.Check(v)
}
