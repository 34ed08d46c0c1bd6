// This file defines the error taxonomy used across the application. Input
// validation failures, provider lookup failures and export failures are kept
// as distinct types so adapters can map them to the right user-facing
// response with errors.As.
package music

import "fmt"

// InputError reports invalid caller input such as an empty artist list or a
// non-positive track count. It is surfaced directly to the user and never
// retried internally.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// NewInputError builds an InputError with a formatted reason.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// LookupError reports a failed provider lookup for a specific artist. Callers
// are expected to substitute a fallback profile rather than abort.
type LookupError struct {
	Artist string
	Err    error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lookup %q failed", e.Artist)
	}
	return fmt.Sprintf("lookup %q: %v", e.Artist, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ExportError reports a failed album export. The in-memory album is not
// affected and the export can be retried.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
