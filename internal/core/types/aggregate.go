package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// aggregateStrings summarizes by distinct count: nothing, the single value,
// or "N values".
func aggregateStrings(values []Value) Value {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v.String()] = struct{}{}
	}
	switch len(seen) {
	case 0:
		return StringValue("")
	case 1:
		return values[0]
	}
	return StringValue(strconv.Itoa(len(seen)) + " values")
}

// aggregateNumbers sums; nulls count as zero.
func aggregateNumbers(values []Value) Value {
	var sum float64
	for _, v := range values {
		if n, ok := v.Num(); ok {
			sum += n
		}
	}
	return NumberValue(sum)
}

// aggregateBools is the share of true values, as a percent.
func aggregateBools(values []Value) Value {
	if len(values) == 0 {
		return Null(Percent)
	}
	var trues int64
	for _, v := range values {
		if b, ok := v.Bool(); ok && b {
			trues++
		}
	}
	return PercentValue(decimal.NewFromInt(trues).Div(decimal.NewFromInt(int64(len(values)))))
}

// aggregatePercents is the mean; nulls count as zero.
func aggregatePercents(values []Value) Value {
	if len(values) == 0 {
		return Null(Percent)
	}
	sum := decimal.Zero
	for _, v := range values {
		if p, ok := v.Pct(); ok {
			sum = sum.Add(p)
		}
	}
	return PercentValue(sum.Div(decimal.NewFromInt(int64(len(values)))))
}
