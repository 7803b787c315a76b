// Package types defines the closed set of cell value kinds and the
// per-kind registry of comparison, filtering, aggregation, formatting and
// parsing used by the query pipeline.
package types

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is a column value kind.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Percent Kind = "percent"
	Boolean Kind = "boolean"
	Date    Kind = "date"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{String, Number, Percent, Boolean, Date}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("unknown kind %q", s)
	}
	return k, nil
}

// Value is a typed cell. The zero Value of a kind is that kind's null.
type Value struct {
	kind  Kind
	valid bool

	str string
	num float64
	pct decimal.Decimal
	b   bool
	t   time.Time
}

// Null returns the null value of kind k.
func Null(k Kind) Value { return Value{kind: k} }

func StringValue(s string) Value { return Value{kind: String, valid: true, str: s} }
func NumberValue(n float64) Value { return Value{kind: Number, valid: true, num: n} }
func BoolValue(b bool) Value { return Value{kind: Boolean, valid: true, b: b} }
func DateValue(t time.Time) Value { return Value{kind: Date, valid: true, t: t} }

// PercentValue holds a ratio; 0.25 is displayed as 25%.
func PercentValue(d decimal.Decimal) Value {
	return Value{kind: Percent, valid: true, pct: d}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return !v.valid }

func (v Value) Str() (string, bool) { return v.str, v.valid && v.kind == String }
func (v Value) Num() (float64, bool) { return v.num, v.valid && v.kind == Number }
func (v Value) Pct() (decimal.Decimal, bool) { return v.pct, v.valid && v.kind == Percent }
func (v Value) Bool() (bool, bool) { return v.b, v.valid && v.kind == Boolean }
func (v Value) Time() (time.Time, bool) { return v.t, v.valid && v.kind == Date }

// String is the raw, unformatted representation. Two values of the same kind
// with the same String are considered equal for grouping.
func (v Value) String() string {
	if !v.valid {
		return "null"
	}
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Percent:
		return v.pct.String()
	case Boolean:
		return strconv.FormatBool(v.b)
	case Date:
		return v.t.Format(time.RFC3339)
	}
	return ""
}

// Any returns the value as a plain Go value, nil for null. Used when
// exporting rows.
func (v Value) Any() any {
	if !v.valid {
		return nil
	}
	switch v.kind {
	case String:
		return v.str
	case Number:
		return v.num
	case Percent:
		return v.pct.InexactFloat64()
	case Boolean:
		return v.b
	case Date:
		return v.t.Format(time.DateOnly)
	}
	return nil
}
