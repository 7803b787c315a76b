package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{time.DateOnly, time.RFC3339, "02/01/2006", time.DateTime}

func parseString(s string) (Value, error) {
	return StringValue(s), nil
}

func parseNumber(s string) (Value, error) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return Null(Number), fmt.Errorf("parse number %q: %w", s, err)
	}
	return NumberValue(n), nil
}

// parsePercent accepts "12.5%" (a percentage) or "0.125" (a ratio).
func parsePercent(s string) (Value, error) {
	raw := strings.TrimSpace(s)
	shift := int32(0)
	if trimmed, ok := strings.CutSuffix(raw, "%"); ok {
		raw = strings.TrimSpace(trimmed)
		shift = -2
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Null(Percent), fmt.Errorf("parse percent %q: %w", s, err)
	}
	return PercentValue(d.Shift(shift)), nil
}

func parseBool(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return BoolValue(true), nil
	case "no", "n", "off":
		return BoolValue(false), nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return Null(Boolean), fmt.Errorf("parse boolean %q: %w", s, err)
	}
	return BoolValue(b), nil
}

func parseDate(s string) (Value, error) {
	raw := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateValue(t), nil
		}
	}
	return Null(Date), fmt.Errorf("parse date %q: unrecognized layout", s)
}

// Coerce converts a decoded JSON or YAML scalar into a value of kind k.
func Coerce(k Kind, raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(k), nil
	case Value:
		if x.kind != k {
			return Null(k), fmt.Errorf("coerce %s value to %s", x.kind, k)
		}
		return x, nil
	case string:
		return Parse(k, x)
	case bool:
		if k == Boolean {
			return BoolValue(x), nil
		}
	case int:
		return Coerce(k, float64(x))
	case int64:
		return Coerce(k, float64(x))
	case float64:
		switch k {
		case Number:
			return NumberValue(x), nil
		case Percent:
			return PercentValue(decimal.NewFromFloat(x)), nil
		}
	case time.Time:
		if k == Date {
			return DateValue(x), nil
		}
	}
	if k == String {
		return StringValue(fmt.Sprint(raw)), nil
	}
	return Null(k), fmt.Errorf("coerce %T to %s", raw, k)
}
