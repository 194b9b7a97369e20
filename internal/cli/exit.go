package cli

// ExitError carries a specific process exit code back to main. An empty
// Message means nothing more needs to be printed.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}
