// Package filter decides which merged manifest entries the server bootstrap
// loads for a target environment, and which ids start disabled.
package filter

import (
	"slices"

	"github.com/plin-labs/plin-boot/internal/manifest"
)

// EnvNode is the environment the server bootstrap is generated for.
const EnvNode = "node"

// ShouldLoad reports whether d is loadable in env. Directives and
// descriptors of a non-cljs type are never loaded; otherwise d loads when
// it declares no environments or lists env. Modes and the enabled flag
// are not consulted; mode activation happens in the plugin runtime.
func ShouldLoad(d manifest.Descriptor, env string) bool {
	if d.IsDirective() {
		return false
	}
	if d.EffectiveType() != manifest.TypeCLJS {
		return false
	}
	return len(d.Envs) == 0 || slices.Contains(d.Envs, env)
}

// Apply returns the entries of m that ShouldLoad in env, in manifest order.
func Apply(m manifest.Manifest, env string) manifest.Manifest {
	out := manifest.Manifest{}
	for _, d := range m {
		if ShouldLoad(d, env) {
			out = append(out, d)
		}
	}
	return out
}

// DisabledIDs returns the ids of every entry in m with :enabled false, in
// manifest order and without repeats. It runs over the full merged
// manifest, not the filtered one, so entries excluded from this
// environment are still recorded as disabled.
func DisabledIDs(m manifest.Manifest) []string {
	ids := []string{}
	seen := make(map[string]bool)
	for _, d := range m {
		if d.ID == "" || !d.ExplicitlyDisabled() || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		ids = append(ids, d.ID)
	}
	return ids
}
