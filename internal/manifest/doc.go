// Package manifest extracts PLIN plugin descriptors from plin.edn manifests.
// The reader understands only the subset of EDN needed to pull out known
// descriptor fields; records it cannot make sense of are dropped silently.
// Validate checks parsed descriptors against an embedded JSON schema.
package manifest
