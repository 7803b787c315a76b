package types

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) Value {
	return PercentValue(decimal.RequireFromString(s))
}

func day(y int, m time.Month, d int) Value {
	return DateValue(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestCompare_NullSortsFirst(t *testing.T) {
	samples := map[Kind]Value{
		String:  StringValue(""),
		Number:  NumberValue(-1e9),
		Percent: pct("-1"),
		Boolean: BoolValue(false),
		Date:    day(1, 1, 1),
	}

	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			v := samples[k]
			assert.Equal(t, -1, Compare(Null(k), v))
			assert.Equal(t, 1, Compare(v, Null(k)))
			assert.Equal(t, 0, Compare(Null(k), Null(k)))
		})
	}
}

func TestCompare_PerKind(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{name: "string case-insensitive", a: StringValue("apple"), b: StringValue("Banana"), want: -1},
		{name: "string equal ignoring case", a: StringValue("abc"), b: StringValue("ABC"), want: 0},
		{name: "number", a: NumberValue(10), b: NumberValue(9.5), want: 1},
		{name: "percent", a: pct("0.25"), b: pct("0.250"), want: 0},
		{name: "boolean", a: BoolValue(false), b: BoolValue(true), want: -1},
		{name: "date", a: day(2024, 1, 2), b: day(2023, 12, 31), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Run("strings", func(t *testing.T) {
		assert.Equal(t, StringValue(""), Aggregate(String, nil))
		assert.Equal(t, StringValue("x"), Aggregate(String, []Value{StringValue("x"), StringValue("x")}))
		assert.Equal(t, StringValue("3 values"), Aggregate(String, []Value{
			StringValue("x"), StringValue("y"), Null(String), StringValue("y"),
		}))
	})

	t.Run("numbers sum with nulls as zero", func(t *testing.T) {
		got := Aggregate(Number, []Value{NumberValue(1.5), Null(Number), NumberValue(2)})
		n, ok := got.Num()
		require.True(t, ok)
		assert.InDelta(t, 3.5, n, 1e-9)
	})

	t.Run("booleans as share of true", func(t *testing.T) {
		got := Aggregate(Boolean, []Value{BoolValue(true), BoolValue(false), Null(Boolean), BoolValue(true)})
		p, ok := got.Pct()
		require.True(t, ok)
		assert.True(t, p.Equal(decimal.RequireFromString("0.5")), p.String())
		assert.True(t, Aggregate(Boolean, nil).IsNull())
		assert.Equal(t, Percent, Aggregate(Boolean, nil).Kind())
	})

	t.Run("percents mean", func(t *testing.T) {
		got := Aggregate(Percent, []Value{pct("0.2"), pct("0.4"), Null(Percent)})
		p, ok := got.Pct()
		require.True(t, ok)
		assert.True(t, p.Equal(decimal.RequireFromString("0.2")), p.String())
		assert.True(t, Aggregate(Percent, nil).IsNull())
	})

	t.Run("dates unsupported", func(t *testing.T) {
		assert.True(t, Aggregate(Date, []Value{day(2024, 1, 1)}).IsNull())
	})
}

func TestFormat(t *testing.T) {
	dash := "n/a"
	tests := []struct {
		name string
		v    Value
		opts FormatOptions
		want string
	}{
		{name: "string", v: StringValue("hi"), want: "hi"},
		{name: "null string", v: Null(String), want: ""},
		{name: "null string override", v: Null(String), opts: FormatOptions{NullValue: &dash}, want: "n/a"},
		{name: "bool default labels", v: BoolValue(true), want: "true"},
		{name: "bool custom labels", v: BoolValue(false), opts: FormatOptions{TrueLabel: "yes", FalseLabel: "no"}, want: "no"},
		{name: "null bool", v: Null(Boolean), want: "—"},
		{name: "number grouping", v: NumberValue(1234.5), want: "1,234.5"},
		{name: "number precision", v: NumberValue(1234.5678), opts: FormatOptions{Precision: 3}, want: "1,230"},
		{name: "null number", v: Null(Number), want: "—"},
		{name: "percent", v: pct("0.25"), want: "25%"},
		{name: "percent precision", v: pct("0.123456"), opts: FormatOptions{Precision: 2}, want: "12%"},
		{name: "date iso", v: day(2024, 3, 9), want: "2024-03-09"},
		{name: "date day first", v: day(2024, 3, 9), opts: FormatOptions{DateFormat: DateDayFirst}, want: "09/03/2024"},
		{name: "null date", v: Null(Date), want: "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.v, tt.opts))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		kind    Kind
		in      string
		want    Value
		wantErr bool
	}{
		{kind: Number, in: "1,250.5", want: NumberValue(1250.5)},
		{kind: Number, in: "abc", wantErr: true},
		{kind: Percent, in: "12.5%", want: pct("0.125")},
		{kind: Percent, in: "0.3", want: pct("0.3")},
		{kind: Boolean, in: "yes", want: BoolValue(true)},
		{kind: Boolean, in: "FALSE", want: BoolValue(false)},
		{kind: Boolean, in: "maybe", wantErr: true},
		{kind: Date, in: "2024-03-09", want: day(2024, 3, 9)},
		{kind: Date, in: "09/03/2024", want: day(2024, 3, 9)},
		{kind: Date, in: "March", wantErr: true},
		{kind: String, in: "", want: Null(String)},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.in, func(t *testing.T) {
			got, err := Parse(tt.kind, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, Compare(tt.want, got), "want %s got %s", tt.want, got)
			assert.Equal(t, tt.want.IsNull(), got.IsNull())
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("percent")
	require.NoError(t, err)
	assert.Equal(t, Percent, k)

	_, err = ParseKind("money")
	require.Error(t, err)
}

func TestCoerce(t *testing.T) {
	v, err := Coerce(Number, 3)
	require.NoError(t, err)
	n, _ := v.Num()
	assert.InDelta(t, 3.0, n, 0)

	v, err = Coerce(Percent, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "50%", Format(v, FormatOptions{}))

	v, err = Coerce(Boolean, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = Coerce(String, 42.0)
	require.NoError(t, err)
	assert.Equal(t, "42", Format(v, FormatOptions{}))

	_, err = Coerce(Date, true)
	require.Error(t, err)
}

func TestFilters(t *testing.T) {
	yes := true

	tests := []struct {
		name   string
		filter Filter
		v      Value
		want   bool
	}{
		{name: "bool unset matches all", filter: BoolFilter{}, v: Null(Boolean), want: true},
		{name: "bool equal", filter: BoolFilter{Value: &yes}, v: BoolValue(true), want: true},
		{name: "bool null never equals", filter: BoolFilter{Value: &yes}, v: Null(Boolean), want: false},
		{name: "string in", filter: StringFilter{Op: OpIn, Values: []string{"a", "b"}}, v: StringValue("b"), want: true},
		{name: "string in null", filter: StringFilter{Op: OpIn, Values: []string{"a"}, IncludeNull: true}, v: Null(String), want: true},
		{name: "string not in", filter: StringFilter{Op: OpNotIn, Values: []string{"a"}}, v: StringValue("a"), want: false},
		{name: "string not in null", filter: StringFilter{Op: OpNotIn, Values: []string{"a"}}, v: Null(String), want: true},
		{name: "string glob", filter: StringFilter{Op: OpMatch, Pattern: "ab*"}, v: StringValue("abc"), want: true},
		{name: "string glob miss", filter: StringFilter{Op: OpMatch, Pattern: "ab*"}, v: StringValue("cab"), want: false},
		{name: "eq", filter: CompareFilter{Op: OpEQ, Value: NumberValue(3)}, v: NumberValue(3), want: true},
		{name: "gt", filter: CompareFilter{Op: OpGT, Value: NumberValue(3)}, v: NumberValue(3), want: false},
		{name: "gte", filter: CompareFilter{Op: OpGTE, Value: NumberValue(3)}, v: NumberValue(3), want: true},
		{name: "lt null", filter: CompareFilter{Op: OpLT, Value: NumberValue(3)}, v: Null(Number), want: true},
		{name: "lte", filter: CompareFilter{Op: OpLTE, Value: pct("0.5")}, v: pct("0.6"), want: false},
		{name: "between exclusive edge", filter: CompareFilter{Op: OpBetween, A: NumberValue(1), B: NumberValue(5)}, v: NumberValue(5), want: false},
		{name: "between inside", filter: CompareFilter{Op: OpBetween, A: NumberValue(1), B: NumberValue(5)}, v: NumberValue(2), want: true},
		{name: "betweene edge", filter: CompareFilter{Op: OpBetweenE, A: day(2024, 1, 1), B: day(2024, 2, 1)}, v: day(2024, 2, 1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.v))
		})
	}
}

func TestBuildFilter(t *testing.T) {
	f, err := BuildFilter(Number, FilterSpec{Op: "GTE", Value: "18"})
	require.NoError(t, err)
	assert.True(t, f.Match(NumberValue(18)))
	assert.False(t, f.Match(NumberValue(17)))

	f, err = BuildFilter(Date, FilterSpec{Op: "between", A: "2024-01-01", B: "2024-12-31"})
	require.NoError(t, err)
	assert.True(t, f.Match(day(2024, 6, 1)))

	f, err = BuildFilter(Boolean, FilterSpec{Value: "false"})
	require.NoError(t, err)
	assert.True(t, f.Match(BoolValue(false)))

	f, err = BuildFilter(String, FilterSpec{Op: "in", Values: []string{"x"}})
	require.NoError(t, err)
	assert.True(t, f.Match(StringValue("x")))

	_, err = BuildFilter(String, FilterSpec{Op: "match", Value: "[a-"})
	require.Error(t, err)

	_, err = BuildFilter(Number, FilterSpec{Op: "near", Value: "1"})
	require.Error(t, err)

	_, err = BuildFilter(Percent, FilterSpec{Op: "eq", Value: "lots"})
	require.Error(t, err)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "null", Null(Number).String())
	assert.Equal(t, "2.5", NumberValue(2.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Nil(t, Null(Date).Any())
	assert.Equal(t, "2024-03-09", day(2024, 3, 9).Any())
}
