// Package manager owns every loaded profile and binds profiles to live
// sessions.
//
// A Manager keeps an index of loaded profiles keyed by file path, the
// default profile, the favorites and the keyboard shortcuts, and remembers
// which profile each session was created from. Changes made through
// ChangeProfile are pushed to the bound sessions, restricted to the
// properties that changed, and optionally written back to disk.
//
// # Loading
//
// LoadProfile accepts bare names ("Work"), file names ("Work.profile"),
// paths relative to the data directories ("profiles/Work.profile") and
// absolute paths. Parents named in a profile file are loaded recursively.
// A parent chain that loops back to a profile being loaded is cut by
// substituting the fallback profile.
//
// # Sessions
//
// Each session has a nominal profile and, once an inline command has been
// received, a hidden runtime overlay parented on it:
//
//	s := m.CreateSession(nil) // default profile
//	m.ProfileCommandReceived(s, "Icon=remote;Directory=/srv")
//
// A Manager is not safe for concurrent use.
package manager
