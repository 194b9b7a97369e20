package registry

import (
	"os"
	"path/filepath"

	"github.com/plin-labs/plin-boot/internal/branding"
)

// platformPackage is the npm package that ships the platform manifest.
var platformPackage = branding.PlatformPackage()

// userCandidates is the search order for the application's manifest.
var userCandidates = []Candidate{
	{Kind: KindUser, Path: "plin.edn"},
	{Kind: KindUser, Path: "manifest.edn"},
	{Kind: KindUser, Path: "public/plin.edn"},
	{Kind: KindUser, Path: "public/manifest.edn"},
}

// platformCandidates is the search order for the platform manifest: the
// platform's own working tree first, then the installed dependency.
var platformCandidates = []Candidate{
	{Kind: KindRepoSource, Path: "src/plinpt/plin.edn"},
	{Kind: KindRepoLibs, Path: "libs/plinpt/plin.edn"},
	{Kind: KindDependencySource, Path: "node_modules/" + platformPackage + "/src/plinpt/plin.edn"},
	{Kind: KindDependencyLibs, Path: "node_modules/" + platformPackage + "/libs/plinpt/plin.edn"},
}

// UserCandidates returns the user manifest search order.
func UserCandidates() []Candidate {
	return append([]Candidate(nil), userCandidates...)
}

// PlatformCandidates returns the platform manifest search order.
func PlatformCandidates() []Candidate {
	return append([]Candidate(nil), platformCandidates...)
}

// findFirst returns the first candidate that exists as a regular file
// under root, with its absolute path.
func findFirst(root string, candidates []Candidate) (Candidate, string, bool) {
	for _, c := range candidates {
		p := filepath.Join(root, filepath.FromSlash(c.Path))
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		return c, p, true
	}
	return Candidate{}, "", false
}
