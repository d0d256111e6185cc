// Package types defines the value model used throughout sheetcalc.
// A cell holds exactly one of: blank, boolean, number, or text. Lists appear
// only transiently, as the result of expanding a range reference inside an
// aggregate function; they are never stored in a cell.
package types

import (
	"fmt"
	"math"
	"strings"
)

// ValueType represents the type of a cell value.
type ValueType int

const (
	TypeBlank  ValueType = iota
	TypeBool             // bool
	TypeNumber           // float64
	TypeText             // string
	TypeList             // []Value, expanded range
)

// String returns the type name.
func (t ValueType) String() string {
	switch t {
	case TypeBlank:
		return "blank"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeText:
		return "text"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// Value represents a spreadsheet runtime value. It uses a tagged union
// approach for efficiency; scalar values copy freely.
type Value struct {
	typ     ValueType
	boolVal bool
	numVal  float64
	textVal string
	listVal []Value
}

// Blank is the singleton blank value.
var Blank = Value{typ: TypeBlank}

// Empty is the empty-text value, the soft-fail result for unknown names,
// unknown functions, and reference cycles.
var Empty = Value{typ: TypeText}

// NewBool creates a boolean value.
func NewBool(v bool) Value {
	return Value{typ: TypeBool, boolVal: v}
}

// NewNumber creates a numeric value (64-bit float).
func NewNumber(v float64) Value {
	return Value{typ: TypeNumber, numVal: v}
}

// NewText creates a text value.
func NewText(v string) Value {
	return Value{typ: TypeText, textVal: v}
}

// NewList creates a list value from a slice of values.
func NewList(v []Value) Value {
	return Value{typ: TypeList, listVal: v}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// IsBlank returns true if the value is blank.
func (v Value) IsBlank() bool {
	return v.typ == TypeBlank
}

// AsBool returns the boolean value. Panics if not a bool.
func (v Value) AsBool() bool {
	if v.typ != TypeBool {
		panic(fmt.Sprintf("AsBool called on %s value", v.typ))
	}
	return v.boolVal
}

// AsNumber returns the numeric value. Panics if not a number.
func (v Value) AsNumber() float64 {
	if v.typ != TypeNumber {
		panic(fmt.Sprintf("AsNumber called on %s value", v.typ))
	}
	return v.numVal
}

// AsText returns the text value. Panics if not text.
func (v Value) AsText() string {
	if v.typ != TypeText {
		panic(fmt.Sprintf("AsText called on %s value", v.typ))
	}
	return v.textVal
}

// AsList returns the list value. Panics if not a list.
func (v Value) AsList() []Value {
	if v.typ != TypeList {
		panic(fmt.Sprintf("AsList called on %s value", v.typ))
	}
	return v.listVal
}

// Equal tests strict equality between two values: same type, same payload.
// Operator-level equality (the `=` formula operator) goes through text
// coercion instead; see coerce.go.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeBlank:
		return true
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeNumber:
		return v.numVal == other.numVal
	case TypeText:
		return v.textVal == other.textVal
	case TypeList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a debug representation of the value.
func (v Value) String() string {
	switch v.typ {
	case TypeBlank:
		return "blank"
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case TypeNumber:
		if v.numVal == math.Trunc(v.numVal) && !math.IsInf(v.numVal, 0) {
			return fmt.Sprintf("%.0f", v.numVal)
		}
		return fmt.Sprintf("%g", v.numVal)
	case TypeText:
		return fmt.Sprintf("%q", v.textVal)
	case TypeList:
		parts := make([]string, len(v.listVal))
		for i, item := range v.listVal {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<unknown>"
}
