// Package runtime hands a generated bootstrap file to the script runner
// (nbb by default). DispatchRuntime turns the configured runner command
// into a Runtime; the child shares the terminal of the calling process.
package runtime
