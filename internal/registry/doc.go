// Package registry locates and loads the two layered PLIN manifests, the
// platform manifest shipped with plin-platform and the user manifest of the
// application, and merges them into the ordered manifest the bootstrap
// generator works from. All paths are resolved against an explicit root.
package registry
