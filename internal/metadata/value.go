// Package metadata models the front matter of a single document as an
// ordered record of tagged values.
package metadata

import (
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a front matter value: null, string, number, bool, list or nested record.
// The zero Value is null.
type Value struct {
	kind Kind
	text string // string payload, or the source spelling of a number
	num  float64
	b    bool
	list []Value
	rec  *Record
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// NumberWithText returns a numeric value that renders as its source spelling.
func NumberWithText(f float64, text string) Value {
	return Value{kind: KindNumber, num: f, text: text}
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Strings returns a list value of string items.
func Strings(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = String(s)
	}
	return Value{kind: KindList, list: vals}
}

// Map wraps a nested record.
func Map(r *Record) Value {
	if r == nil {
		return Null()
	}
	return Value{kind: KindMap, rec: r}
}

// Kind reports which member of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether v is a string, number or bool.
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsList returns the list items. The returned slice must not be modified.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsRecord returns the nested record.
func (v Value) AsRecord() (*Record, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.rec, true
}

// String renders the value for display. Null renders empty; lists render
// their items comma separated.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		return v.rec.String()
	default:
		return ""
	}
}

// Interface converts the value to plain Go values (nil, string, float64, bool,
// []any, map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		return v.rec.Map()
	default:
		return nil
	}
}
