package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindNumber
	kindText
	kindBool
)

// Value is one dataset cell: a number, a string, a bool or null.
type Value struct {
	kind valueKind
	num  float64
	text string
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number wraps f.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// Text wraps s.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool { return v.kind == kindNull }

// Float parses v as a finite number. Numbers pass through, strings are
// parsed after trimming; nulls, bools and non-finite results are rejected.
func (v Value) Float() (float64, bool) {
	var f float64
	switch v.kind {
	case kindNumber:
		f = v.num
	case kindText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Key returns the literal representation of v used as a category key.
func (v Value) Key() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Key() }

// MarshalJSON encodes v as a JSON scalar. Non-finite numbers become null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case kindText:
		return json.Marshal(v.text)
	case kindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Null()
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case bytes.Equal(data, []byte("true")):
		*v = Bool(true)
	case bytes.Equal(data, []byte("false")):
		*v = Bool(false)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("unsupported cell value %.20s", data)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", data, err)
		}
		*v = Number(f)
	}
	return nil
}

// DataRow maps column name to cell value.
type DataRow map[string]Value

// Lookup returns the value of col, reporting false when it is absent or null.
func (r DataRow) Lookup(col string) (Value, bool) {
	v, ok := r[col]
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}
