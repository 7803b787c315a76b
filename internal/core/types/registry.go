package types

import "fmt"

// Def is the behaviour of one kind.
type Def struct {
	Kind      Kind
	Compare   func(a, b Value) int
	Aggregate func(values []Value) Value
	Format    func(v Value, opts FormatOptions) string
	Parse     func(s string) (Value, error)
}

var registry = map[Kind]Def{
	String: {
		Kind:      String,
		Compare:   compareStrings,
		Aggregate: aggregateStrings,
		Format:    formatString,
		Parse:     parseString,
	},
	Number: {
		Kind:      Number,
		Compare:   compareNumbers,
		Aggregate: aggregateNumbers,
		Format:    formatNumber,
		Parse:     parseNumber,
	},
	Percent: {
		Kind:      Percent,
		Compare:   comparePercents,
		Aggregate: aggregatePercents,
		Format:    formatPercent,
		Parse:     parsePercent,
	},
	Boolean: {
		Kind:      Boolean,
		Compare:   compareBools,
		Aggregate: aggregateBools,
		Format:    formatBool,
		Parse:     parseBool,
	},
	Date: {
		Kind:      Date,
		Compare:   compareDates,
		Aggregate: func([]Value) Value { return Null(Date) },
		Format:    formatDate,
		Parse:     parseDate,
	},
}

// Lookup returns the definition of k.
func Lookup(k Kind) (Def, bool) {
	d, ok := registry[k]
	return d, ok
}

func mustLookup(k Kind) Def {
	d, ok := registry[k]
	if !ok {
		panic(fmt.Sprintf("types: unknown kind %q", k))
	}
	return d
}

// Compare orders two values of the same kind: -1, 0 or 1. Null sorts before
// every concrete value and equals another null.
func Compare(a, b Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return -1
	case b.IsNull():
		return 1
	}
	return mustLookup(a.kind).Compare(a, b)
}

// Aggregate summarizes values of kind k for a group header.
func Aggregate(k Kind, values []Value) Value {
	return mustLookup(k).Aggregate(values)
}

// Format renders v for display.
func Format(v Value, opts FormatOptions) string {
	return mustLookup(v.kind).Format(v, opts)
}

// Parse reads s as a value of kind k. Empty input is null.
func Parse(k Kind, s string) (Value, error) {
	d, ok := registry[k]
	if !ok {
		return Value{}, fmt.Errorf("unknown kind %q", k)
	}
	if s == "" {
		return Null(k), nil
	}
	return d.Parse(s)
}
