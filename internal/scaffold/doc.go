// Package scaffold creates a new PLIN application from embedded templates.
// It powers the "plin-boot create" command: package.json, nbb.edn, the user
// manifest and a starter plugin namespace.
package scaffold
