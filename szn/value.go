package szn

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueText   ValueKind = "text" // multiline, indentation preserved
	ValueFloat  ValueKind = "float"
	ValueList   ValueKind = "list"
)

// Value is a resolved attribute value. Kind determines which typed field is
// populated. Integer literals resolve as ValueFloat; there is a single
// numeric kind.
type Value struct {
	Kind  ValueKind
	Str   string  // populated when Kind == ValueString or ValueText
	Float float64 // populated when Kind == ValueFloat
	List  []Value // populated when Kind == ValueList
	Raw   string  // original text representation, always set
}

// StringValue builds a plain string Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s, Raw: s}
}

// TextValue builds a multiline string Value. The content is kept verbatim:
// line breaks and indentation are preserved exactly as authored.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Str: s, Raw: s}
}

// FloatValue builds a numeric Value.
func FloatValue(f float64) Value {
	return Value{Kind: ValueFloat, Float: f, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// ListValue builds a list Value. Elements may be of mixed kinds and may
// themselves be lists.
func ListValue(elems ...Value) Value {
	raws := make([]string, len(elems))
	for i, e := range elems {
		raws[i] = e.Raw
	}
	return Value{Kind: ValueList, List: elems, Raw: "(" + strings.Join(raws, ", ") + ")"}
}

// resolveScalar converts raw bare-value text into a Value. Text that parses
// as a number (integer or floating point) becomes a Float; anything else
// degrades to a String, so resolution never fails.
func resolveScalar(raw string) Value {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Kind: ValueFloat, Float: f, Raw: raw}
	}
	return Value{Kind: ValueString, Str: raw, Raw: raw}
}

// Equal reports deep equality of two values. Numeric equality is by value,
// so `1` and `1.0` compare equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueFloat:
		return v.Float == other.Float
	case ValueList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return v.Str == other.Str
	}
}

// String returns the original text representation of the value.
func (v Value) String() string { return v.Raw }

// Interface converts the value to plain Go data: string, float64 or []any.
// Useful for serialization and for consumers that do not care about the
// variant tags.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueFloat:
		return v.Float
	case ValueList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = e.Interface()
		}
		return out
	default:
		return v.Str
	}
}

// GoString helps test failure output stay readable.
func (v Value) GoString() string {
	switch v.Kind {
	case ValueFloat:
		return fmt.Sprintf("Float(%v)", v.Float)
	case ValueList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.GoString()
		}
		return "List(" + strings.Join(parts, ", ") + ")"
	case ValueText:
		return fmt.Sprintf("Text(%q)", v.Str)
	default:
		return fmt.Sprintf("String(%q)", v.Str)
	}
}
