// Package property defines the closed set of terminal profile properties.
//
// The package has three parts:
//
//   - A static registry mapping each Property to its on-disk name, the
//     section ("group") it is persisted under, and its declared value type.
//     Some properties carry short aliases (for example "tabtitle" and
//     "colors") which are accepted when parsing but never written.
//   - Value, a tagged union over the supported value types (string,
//     string list, integer, boolean, font descriptor, color) plus an
//     explicit null meaning "unset".
//   - Map, an insertion-ordered Property to Value mapping used to carry
//     batches of property changes.
//
// # Registry
//
// The registry is filled once on first use and is read-only afterwards:
//
//	p, ok := property.Lookup("HistorySize")   // case-insensitive
//	info := property.InfoOf(p)               // Name, Group, Type
//	for _, p := range property.All() { ... } // registry order
//
// Properties without a group (Path, Title, Command, Arguments) are never
// written to a profile file by the generic writer.
//
// # Values
//
// Values convert between types on a best-effort basis. Coerce converts a
// value to the declared type of a property and never fails; text that
// cannot be parsed becomes the type's zero value:
//
//	v := property.Coerce(property.HistorySize, property.String("2000"))
//	v.AsInt() // 2000
package property
