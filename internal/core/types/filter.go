package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a per-column predicate.
type Filter interface {
	Match(v Value) bool
}

// BoolFilter matches values equal to Value; a nil Value matches everything.
type BoolFilter struct {
	Value *bool
}

func (f BoolFilter) Match(v Value) bool {
	if f.Value == nil {
		return true
	}
	b, ok := v.Bool()
	return ok && b == *f.Value
}

// StringOp is a string filter operator.
type StringOp string

const (
	OpIn    StringOp = "in"
	OpNotIn StringOp = "not_in"
	OpMatch StringOp = "match" // doublestar glob
)

// StringFilter tests set membership or a glob pattern. Null takes part in
// membership when IncludeNull is set.
type StringFilter struct {
	Op          StringOp
	Values      []string
	IncludeNull bool
	Pattern     string
}

func (f StringFilter) Match(v Value) bool {
	s, ok := v.Str()
	switch f.Op {
	case OpMatch:
		if !ok {
			return false
		}
		matched, err := doublestar.Match(f.Pattern, s)
		return err == nil && matched
	case OpNotIn:
		return !f.contains(s, ok)
	default:
		return f.contains(s, ok)
	}
}

func (f StringFilter) contains(s string, ok bool) bool {
	if !ok {
		return f.IncludeNull
	}
	return slices.Contains(f.Values, s)
}

// CompareOp is an ordered comparison operator.
type CompareOp string

const (
	OpEQ       CompareOp = "eq"
	OpGT       CompareOp = "gt"
	OpGTE      CompareOp = "gte"
	OpLT       CompareOp = "lt"
	OpLTE      CompareOp = "lte"
	OpBetween  CompareOp = "between"  // exclusive
	OpBetweenE CompareOp = "betweene" // inclusive
)

// CompareFilter compares against Value, or against the A..B interval for the
// between operators. Null sorts first, so it only passes filters a null
// bound would pass.
type CompareFilter struct {
	Op    CompareOp
	Value Value
	A     Value
	B     Value
}

func (f CompareFilter) Match(v Value) bool {
	switch f.Op {
	case OpEQ:
		return Compare(v, f.Value) == 0
	case OpGT:
		return Compare(v, f.Value) > 0
	case OpGTE:
		return Compare(v, f.Value) >= 0
	case OpLT:
		return Compare(v, f.Value) < 0
	case OpLTE:
		return Compare(v, f.Value) <= 0
	case OpBetween:
		return Compare(v, f.A) > 0 && Compare(v, f.B) < 0
	case OpBetweenE:
		return Compare(v, f.A) >= 0 && Compare(v, f.B) <= 0
	}
	return false
}

// FilterSpec is the serialized form of a filter, as written in presets.
type FilterSpec struct {
	Op     string   `yaml:"op"`
	Value  string   `yaml:"value,omitempty"`
	Values []string `yaml:"values,omitempty"`
	Null   bool     `yaml:"null,omitempty"`
	A      string   `yaml:"a,omitempty"`
	B      string   `yaml:"b,omitempty"`
}

// BuildFilter resolves spec against a column of kind k.
func BuildFilter(k Kind, spec FilterSpec) (Filter, error) {
	op := strings.ToLower(spec.Op)

	switch k {
	case Boolean:
		if op != "" && op != "eq" {
			return nil, fmt.Errorf("boolean filter: unsupported op %q", spec.Op)
		}
		if spec.Value == "" {
			return BoolFilter{}, nil
		}
		v, err := parseBool(spec.Value)
		if err != nil {
			return nil, err
		}
		b, _ := v.Bool()
		return BoolFilter{Value: &b}, nil

	case String:
		switch StringOp(op) {
		case OpIn, OpNotIn:
			return StringFilter{Op: StringOp(op), Values: spec.Values, IncludeNull: spec.Null}, nil
		case OpMatch:
			if !doublestar.ValidatePattern(spec.Value) {
				return nil, fmt.Errorf("string filter: invalid pattern %q", spec.Value)
			}
			return StringFilter{Op: OpMatch, Pattern: spec.Value}, nil
		}
		return nil, fmt.Errorf("string filter: unsupported op %q", spec.Op)

	case Number, Percent, Date:
		f := CompareFilter{Op: CompareOp(op)}
		var err error
		switch f.Op {
		case OpEQ, OpGT, OpGTE, OpLT, OpLTE:
			f.Value, err = Parse(k, spec.Value)
		case OpBetween, OpBetweenE:
			if f.A, err = Parse(k, spec.A); err == nil {
				f.B, err = Parse(k, spec.B)
			}
		default:
			return nil, fmt.Errorf("%s filter: unsupported op %q", k, spec.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("%s filter: %w", k, err)
		}
		return f, nil
	}

	return nil, fmt.Errorf("unknown kind %q", k)
}
