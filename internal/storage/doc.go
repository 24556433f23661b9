// Package storage reads and writes profile files.
//
// Two on-disk formats are supported:
//
//   - The current format (".profile"): an INI file with one section per
//     property group. General.Command holds the program and its arguments
//     as a single shell command line and General.Parent names the path of
//     the parent profile.
//   - The legacy desktop-entry format (".desktop"): a single
//     [Desktop Entry] section with a fixed set of keys and no inheritance.
//     It can only be read.
//
// ReaderFor picks the reader for a file from its suffix. INIWriter writes
// the current format; only properties set locally on a profile are written,
// so inherited values stay inherited after a save and load.
package storage
