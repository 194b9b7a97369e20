package registry

import "github.com/plin-labs/plin-boot/internal/manifest"

// Kind tells where a manifest was found.
type Kind string

const (
	KindUser             Kind = "user"
	KindRepoSource       Kind = "repo-src"
	KindRepoLibs         Kind = "repo-libs"
	KindDependencySource Kind = "dependency-src"
	KindDependencyLibs   Kind = "dependency-libs"
)

// IsDependency reports whether the manifest comes from the installed
// plin-platform package rather than the working tree.
func (k Kind) IsDependency() bool {
	return k == KindDependencySource || k == KindDependencyLibs
}

// Candidate is a root-relative path searched for a manifest.
type Candidate struct {
	Kind Kind
	Path string // slash-separated, relative to the root
}

// Source is a manifest loaded from one location.
type Source struct {
	Kind     Kind
	Path     string // absolute path of the manifest file
	Manifest manifest.Manifest
}

// Resolution is the outcome of loading and merging both sources.
type Resolution struct {
	User            *Source // nil when no user manifest exists
	Platform        *Source // nil when excluded or not found
	IncludePlatform bool
	PlatformVersion *VersionReport // nil unless the platform comes from the dependency tree
	Manifest        manifest.Manifest
}
