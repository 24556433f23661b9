// Package profile implements terminal profiles: sparse property bags with
// single-parent inheritance.
//
// A Profile stores only the properties that were explicitly set on it.
// Reading a property that is not set locally walks up the parent chain,
// except for Name and Path which always belong to the profile itself:
//
//	base := profile.New(nil)
//	base.SetProperty(property.HistorySize, property.Int(1000))
//
//	child := profile.New(base)
//	child.Property(property.HistorySize) // 1000, inherited
//	child.IsPropertySet(property.HistorySize) // false
//
// A Group is a hidden profile that fans writes out to its members and, after
// an explicit UpdateValues call, reports a property only when every member
// agrees on it.
//
// ParseCommand decodes the "Name=Value;Name=Value" override strings that
// running programs send to change their session's profile in-band.
package profile
