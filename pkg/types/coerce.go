package types

import (
	"math"
	"strconv"
	"strings"
)

// Coercion follows spreadsheet semantics, not general-purpose conversion.
// In particular coercion never fails: anything that cannot be read as a
// number becomes 0.

// ToNumber coerces a value to a number.
// Blank and empty text become 0; numeric-looking text parses; everything
// else, including booleans, becomes 0. Booleans are deliberately not mapped
// to 0/1. Lists (expanded ranges outside an aggregate) degrade to 0.
func ToNumber(v Value) float64 {
	switch v.Type() {
	case TypeNumber:
		return v.AsNumber()
	case TypeText:
		s := strings.TrimSpace(v.AsText())
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ToText coerces a value to text for operator use (`&`, `=`, `<>`).
// Blank becomes the empty string; numbers stringify compactly; booleans use
// their lowercase word form here — the uppercase TRUE/FALSE spelling is a
// display-time concern, see Display. Lists degrade to the empty string.
func ToText(v Value) string {
	switch v.Type() {
	case TypeText:
		return v.AsText()
	case TypeNumber:
		return FormatNumber(v.AsNumber())
	case TypeBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Truthy reports whether a value counts as true in a condition.
// Blank is false, booleans pass through, numbers are true when nonzero,
// text when non-empty.
func Truthy(v Value) bool {
	switch v.Type() {
	case TypeBool:
		return v.AsBool()
	case TypeNumber:
		return v.AsNumber() != 0
	case TypeText:
		return v.AsText() != ""
	default:
		return false
	}
}

// Trim coerces to text, strips leading and trailing whitespace, and
// collapses internal whitespace runs to a single space. This is stricter
// than edge-only trimming.
func Trim(v Value) string {
	return strings.Join(strings.Fields(ToText(v)), " ")
}

// FormatNumber renders a number the way the grid shows it: integers without
// a decimal point, everything else in the shortest round-tripping form.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Display renders a value for the grid: blank as empty, booleans as their
// literal uppercase words, numbers compactly, text as-is.
func Display(v Value) string {
	switch v.Type() {
	case TypeBool:
		if v.AsBool() {
			return "TRUE"
		}
		return "FALSE"
	case TypeNumber:
		return FormatNumber(v.AsNumber())
	case TypeText:
		return v.AsText()
	default:
		return ""
	}
}

// FromRaw converts a raw stored value into a Value, promoting numeric-like
// text to a true number. The upstream model extractor keeps every cell value
// as a string, so this is where "12.5" becomes the number 12.5.
func FromRaw(raw interface{}) Value {
	switch val := raw.(type) {
	case nil:
		return Blank
	case bool:
		return NewBool(val)
	case int:
		return NewNumber(float64(val))
	case int64:
		return NewNumber(float64(val))
	case float64:
		return NewNumber(val)
	case string:
		if val == "" {
			return Blank
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return NewNumber(f)
		}
		return NewText(val)
	default:
		return Blank
	}
}
