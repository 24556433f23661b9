// Package logging provides the two output channels of profilectl.
//
//   - Structured diagnostics through a global slog logger, configured once by
//     Setup from the --verbose and --json flags. Library packages log
//     non-fatal conditions here, for example a profile whose parent chain
//     loops back on itself.
//   - User messages printed by the CLI with a status glyph: ℹ for info,
//     ✓ for success, ⚠ for warnings and ✗ for errors.
//
// Typical use:
//
//	logging.Debug("loading profile", "path", path)
//	logging.Warn("unknown encoding", "name", name)
//	logging.UserSuccess("Profile %s saved", name)
//
// Info and success messages go to Stdout, warnings and errors to Stderr.
// Both writers can be replaced in tests.
package logging
