// Package cli implements the mcplint subcommands.
package cli

import "fmt"

// Exit codes. A run that completes but finds error-severity issues is a
// successful computation; it gets its own code, distinct from internal
// failures.
const (
	exitInternal     = 1
	exitValidation   = 2
	exitFileNotFound = 3
)

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
