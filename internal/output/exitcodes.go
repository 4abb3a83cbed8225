// Package output provides structured output and error handling for the pmdocs CLI.
package output

import (
	"errors"
	"fmt"
)

// Exit codes:
// 0 = Success
// 1 = User error (bad flags, missing configuration)
// 2 = System error (fetch failed, git failed, tracker rejected a mutation)
// 3 = Conflict (output path occupied by something unexpected)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// Error kinds. Match them with errors.Is against any error returned by pmdocs.
var (
	// ErrFetch marks a bad network, HTTP or schema response from the collection source.
	ErrFetch = errors.New("fetch error")
	// ErrPathConflict marks an output path that should be a directory but is not.
	ErrPathConflict = errors.New("path conflict")
	// ErrTrackerMutation marks a non-success tracker response during reconciliation.
	ErrTrackerMutation = errors.New("tracker mutation error")
	// ErrUnclassifiedDiff marks a diff entry the reconciler does not act upon.
	ErrUnclassifiedDiff = errors.New("unclassified diff")
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Kind    error
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is/errors.As.
func (e *ExitError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewFetchError reports a failed collection source request.
func NewFetchError(message string, cause error) *ExitError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &ExitError{Code: ExitSystemError, Kind: ErrFetch, Message: message, Cause: cause}
}

// NewPathConflictError reports an output path that exists but is not a directory.
func NewPathConflictError(path string) *ExitError {
	return &ExitError{
		Code:    ExitConflict,
		Kind:    ErrPathConflict,
		Message: fmt.Sprintf("output %s is a file, expected a directory", path),
	}
}

// NewTrackerMutationError reports a rejected tracker call for the given path and commit.
func NewTrackerMutationError(path, commit string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Kind:    ErrTrackerMutation,
		Message: fmt.Sprintf("tracker update for %s at commit %s failed: %v", path, commit, cause),
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
