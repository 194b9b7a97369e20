package registry

import "github.com/plin-labs/plin-boot/internal/manifest"

// IncludesPlatform reports whether the platform manifest should be layered
// under user. Any directive with :include-platform? false opts out.
func IncludesPlatform(user manifest.Manifest) bool {
	for _, d := range user {
		if d.DisablesPlatform() {
			return false
		}
	}
	return true
}

// Resolve merges the platform and user manifests. The result is platform
// entries followed by user entries, each in source order, unless the user
// manifest opts out of the platform, in which case only user entries are
// returned. Neither input is modified.
func Resolve(platform, user manifest.Manifest) manifest.Manifest {
	if !IncludesPlatform(user) {
		return append(manifest.Manifest{}, user...)
	}
	merged := make(manifest.Manifest, 0, len(platform)+len(user))
	merged = append(merged, platform...)
	return append(merged, user...)
}
