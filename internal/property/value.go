package property

import (
	"slices"
	"strconv"
	"strings"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindStringList
	KindInt
	KindBool
	KindFont
	KindColor
)

// String returns the type name shown by PropertiesInfoList.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "[]string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFont:
		return "font"
	case KindColor:
		return "color"
	default:
		return "null"
	}
}

// Value is a tagged union holding one property value. The zero Value is
// null, the explicit "unset" value.
type Value struct {
	kind  Kind
	str   string
	list  []string
	num   int
	flag  bool
	font  FontDesc
	color Color
}

// Null returns the unset value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// StringList wraps a copy of l.
func StringList(l []string) Value {
	return Value{kind: KindStringList, list: slices.Clone(l)}
}

// Int wraps an integer.
func Int(i int) Value { return Value{kind: KindInt, num: i} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// FontValue wraps a font descriptor.
func FontValue(f FontDesc) Value {
	f.Extra = slices.Clone(f.Extra)
	return Value{kind: KindFont, font: f}
}

// ColorValue wraps a color.
func ColorValue(c Color) Value { return Value{kind: KindColor, color: c} }

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the unset value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString converts v to its textual form.
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindStringList:
		return JoinList(v.list)
	case KindInt:
		return strconv.Itoa(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindFont:
		return v.font.String()
	case KindColor:
		return v.color.String()
	default:
		return ""
	}
}

// AsStringList converts v to a list. A string is split on unescaped commas.
func (v Value) AsStringList() []string {
	switch v.kind {
	case KindStringList:
		return slices.Clone(v.list)
	case KindNull:
		return nil
	case KindString:
		return SplitList(v.str)
	default:
		return []string{v.AsString()}
	}
}

// AsInt converts v to an integer; unparsable text yields 0.
func (v Value) AsInt() int {
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		if v.flag {
			return 1
		}
		return 0
	case KindString:
		n, err := strconv.Atoi(strings.TrimSpace(v.str))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// AsBool converts v to a boolean.
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.flag
	case KindInt:
		return v.num != 0
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.str)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	default:
		return false
	}
}

// AsFont converts v to a font descriptor.
func (v Value) AsFont() FontDesc {
	switch v.kind {
	case KindFont:
		f := v.font
		f.Extra = slices.Clone(f.Extra)
		return f
	case KindString:
		f, _ := ParseFont(v.str)
		return f
	default:
		return FontDesc{}
	}
}

// AsColor converts v to a color.
func (v Value) AsColor() Color {
	switch v.kind {
	case KindColor:
		return v.color
	case KindString:
		c, _ := ParseColor(v.str)
		return c
	default:
		return Color{}
	}
}

// Convert returns v converted to kind k. Null stays null.
func (v Value) Convert(k Kind) Value {
	if v.kind == k || v.kind == KindNull {
		return v
	}
	switch k {
	case KindString:
		return String(v.AsString())
	case KindStringList:
		return StringList(v.AsStringList())
	case KindInt:
		return Int(v.AsInt())
	case KindBool:
		return Bool(v.AsBool())
	case KindFont:
		return FontValue(v.AsFont())
	case KindColor:
		return ColorValue(v.AsColor())
	default:
		return Null()
	}
}

// Equal reports whether v and o hold the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindStringList:
		return slices.Equal(v.list, o.list)
	case KindInt:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindFont:
		return v.font.Equal(o.font)
	case KindColor:
		return v.color == o.color
	}
	return false
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindNull {
		return "<unset>"
	}
	return v.AsString()
}

// Parse decodes text stored for a property of kind k.
func Parse(k Kind, text string) Value {
	return String(text).Convert(k)
}

// Coerce converts v to the declared type of p.
func Coerce(p Property, v Value) Value {
	return v.Convert(TypeOf(p))
}

// JoinList encodes a list as comma separated text, escaping commas and
// backslashes inside elements.
func JoinList(list []string) string {
	escaped := make([]string, len(list))
	for i, s := range list {
		s = strings.ReplaceAll(s, `\`, `\\`)
		escaped[i] = strings.ReplaceAll(s, ",", `\,`)
	}
	return strings.Join(escaped, ",")
}

// SplitList decodes text produced by JoinList. Empty text is an empty list.
func SplitList(text string) []string {
	if text == "" {
		return []string{}
	}
	var (
		out     []string
		cur     strings.Builder
		escaped bool
	)
	for _, r := range text {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(out, cur.String())
}
