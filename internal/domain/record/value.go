package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnsupportedValue signals a value that is neither a scalar nor a list of scalars.
var ErrUnsupportedValue = errors.New("unsupported record value")

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindNull is the absent/null value.
	KindNull Kind = iota
	// KindString is a text value.
	KindString
	// KindInt is an integral number.
	KindInt
	// KindFloat is a fractional number.
	KindFloat
	// KindBool is a boolean.
	KindBool
	// KindList is a list of scalars.
	KindList
)

// Value is a record field value: a scalar or a list of scalars.
type Value struct {
	kind  Kind
	str   string
	num   int64
	flt   float64
	flag  bool
	items []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List returns a list value. Nested lists are rejected.
func List(items ...Value) (Value, error) {
	for i, it := range items {
		if it.kind == KindList {
			return Value{}, fmt.Errorf("list item %d is a list: %w", i, ErrUnsupportedValue)
		}
	}
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, items: cp}, nil
}

// Strings returns a list value of string items.
func Strings(ss ...string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = Str(s)
	}
	return Value{kind: KindList, items: items}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// Items returns a copy of the list items. Nil for scalars.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// String renders the value as used for every comparison and sort:
// strings verbatim, booleans as True/False, null as None, lists as ['a', 1].
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return formatFloat(v.flt)
	case KindBool:
		if v.flag {
			return "True"
		}
		return "False"
	case KindList:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "None"
	}
}

// repr renders a list item; strings are quoted.
func (v Value) repr() string {
	if v.kind != KindString {
		return v.String()
	}
	quote := "'"
	if strings.Contains(v.str, "'") && !strings.Contains(v.str, `"`) {
		quote = `"`
	}
	var b strings.Builder
	b.WriteString(quote)
	for _, r := range v.str {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if f == math.Trunc(f) && abs < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64) + ".0"
	}
	// Positional between 1e-4 and 1e16, exponent form outside.
	if abs >= 1e-4 && abs < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// MarshalJSON encodes the value as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.flt, 'g', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.flag)), nil
	case KindList:
		items := v.items
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(items)
	default:
		return []byte("null"), nil
	}
}

// FromAny converts a decoded JSON value (decoded with UseNumber or not) into a Value.
func FromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return Str(x), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", x.String(), ErrUnsupportedValue)
		}
		return Float(f), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return Int(int64(x)), nil
		}
		return Float(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case []any:
		items := make([]Value, 0, len(x))
		for i, it := range x {
			if _, nested := it.([]any); nested {
				return Value{}, fmt.Errorf("list item %d is a list: %w", i, ErrUnsupportedValue)
			}
			iv, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("list item %d: %w", i, err)
			}
			items = append(items, iv)
		}
		return Value{kind: KindList, items: items}, nil
	default:
		return Value{}, fmt.Errorf("%T: %w", raw, ErrUnsupportedValue)
	}
}
