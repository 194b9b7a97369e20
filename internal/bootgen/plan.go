package bootgen

import (
	"regexp"

	"github.com/plin-labs/plin-boot/internal/filter"
	"github.com/plin-labs/plin-boot/internal/manifest"
)

// Import is one static require of a plugin namespace.
type Import struct {
	Namespace string
	Alias     string
	ID        string
}

// Plan is everything the bootstrap template needs.
type Plan struct {
	Env         string
	Imports     []Import
	DisabledIDs []string

	// Skipped holds plugins whose entry is not a namespace symbol. They are
	// left out of the requires.
	Skipped []manifest.Descriptor
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*(\.[A-Za-z_][A-Za-z0-9_\-]*)*$`)

// NewPlan builds the bootstrap plan from the env-filtered plugin list and
// the full merged manifest. Each distinct entry namespace becomes one
// import, in plugin order; plugins without an entry contribute nothing and
// plugins whose entry is not a namespace symbol are listed in Skipped.
// Disabled ids come from merged so that plugins filtered out of env are
// still recorded as disabled.
func NewPlan(env string, plugins, merged manifest.Manifest) *Plan {
	p := &Plan{
		Env:         env,
		Imports:     []Import{},
		DisabledIDs: filter.DisabledIDs(merged),
	}
	aliases := newAliasTable()
	for _, d := range plugins {
		if d.Entry == "" {
			continue
		}
		if !namespacePattern.MatchString(d.Entry) {
			p.Skipped = append(p.Skipped, d)
			continue
		}
		alias, seen := aliases.alias(d.Entry)
		if seen {
			continue
		}
		p.Imports = append(p.Imports, Import{Namespace: d.Entry, Alias: alias, ID: d.ID})
	}
	return p
}
