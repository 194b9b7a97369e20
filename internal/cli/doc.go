// Package cli defines the Cobra command tree for the plin-boot CLI. The
// root command generates the server bootstrap; each other file registers
// one subcommand. Commands delegate to internal packages for the work and
// only handle flags and output formatting.
package cli
