// Package bootgen renders the generated nbb server bootstrap. nbb cannot
// require a namespace by name at run time, so the bootstrap lists every
// plugin namespace as a static require and hands the resulting plugin
// values, in load order, to plin.boot/bootstrap!.
//
// Output is deterministic for a given manifest: only the "Generated at"
// line depends on the clock.
package bootgen
