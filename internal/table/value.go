package table

import (
	"fmt"
	"strconv"
)

// Kind is the semantic type of a scalar cell value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// Value is a typed scalar read from a table cell. Values are immutable
// once constructed.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
}

func Null() Value {
	return Value{Kind: KindNull}
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String renders the value the way a SQL driver would when scanned into a
// string: numbers without a trailing ".0", nulls as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Row maps column name to the cell value read for that column.
type Row map[string]Value

// valueFrom converts a driver-level scan result into a Value.
func valueFrom(src interface{}) Value {
	switch s := src.(type) {
	case nil:
		return Null()
	case int64:
		return Number(float64(s))
	case float64:
		return Number(s)
	case []byte:
		return Text(string(s))
	case string:
		return Text(s)
	default:
		return Text(fmt.Sprint(s))
	}
}
