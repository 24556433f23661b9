// Package errors provides typed errors with exit codes for profilectl.
//
// Library packages return plain wrapped errors and sentinel values such as
// manager.ErrProfileNotFound. The CLI converts them into a ProfileError at
// the command boundary so that main can pick the exit code:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
//
// # Exit Codes
//
//	ExitSuccess          = 0  // Success
//	ExitGeneralError     = 1  // General/unknown errors
//	ExitProfileNotFound  = 2  // Profile file missing or unreadable
//	ExitWriteFailed      = 3  // Profile or settings could not be saved
//	ExitConfigError      = 4  // Broken settings or layout
//	ExitInvalidArgument  = 5  // Bad command line input
//	ExitShortcutNotFound = 6  // No profile bound to a key sequence
package errors
