package errors

import (
	"errors"
	"fmt"
)

// Exit codes for profilectl
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitProfileNotFound  = 2
	ExitWriteFailed      = 3
	ExitConfigError      = 4
	ExitInvalidArgument  = 5
	ExitShortcutNotFound = 6
)

// ProfileError carries a user-facing message and the process exit code.
type ProfileError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ProfileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ProfileError) ExitCode() int {
	return e.Code
}

// New creates a ProfileError without a cause.
func New(code int, message string) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a ProfileError around cause.
func Wrap(code int, message string, cause error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ProfileNotFound reports a profile that could not be loaded.
func ProfileNotFound(name string, cause error) *ProfileError {
	return Wrap(ExitProfileNotFound, fmt.Sprintf("profile not found: %s", name), cause)
}

// WriteFailed reports a profile or settings file that could not be saved.
func WriteFailed(what string, cause error) *ProfileError {
	return Wrap(ExitWriteFailed, fmt.Sprintf("failed to save %s", what), cause)
}

// ConfigError reports a broken configuration file or layout.
func ConfigError(message string, cause error) *ProfileError {
	return Wrap(ExitConfigError, message, cause)
}

// InvalidArgument reports bad command line input.
func InvalidArgument(message string) *ProfileError {
	return New(ExitInvalidArgument, message)
}

// ShortcutNotFound reports a key sequence with no usable profile.
func ShortcutNotFound(keys string) *ProfileError {
	return New(ExitShortcutNotFound, fmt.Sprintf("no profile bound to shortcut %s", keys))
}

// GetExitCode extracts the exit code from an error chain.
func GetExitCode(err error) int {
	var profileErr *ProfileError
	if errors.As(err, &profileErr) {
		return profileErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
