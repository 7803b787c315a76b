package types

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Date layouts accepted by FormatOptions.DateFormat.
const (
	DateISO      = "YYYY-MM-DD"
	DateDayFirst = "DD/MM/YYYY"
)

const defaultNull = "—"

// FormatOptions tune how a column renders. Zero fields select the kind's
// default.
type FormatOptions struct {
	NullValue  *string `yaml:"null_value,omitempty"`
	TrueLabel  string  `yaml:"true_label,omitempty"`
	FalseLabel string  `yaml:"false_label,omitempty"`
	Precision  int     `yaml:"precision,omitempty"` // significant digits
	DateFormat string  `yaml:"date_format,omitempty"`
}

func (o FormatOptions) null(def string) string {
	if o.NullValue != nil {
		return *o.NullValue
	}
	return def
}

func formatString(v Value, o FormatOptions) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return o.null("")
}

func formatBool(v Value, o FormatOptions) string {
	b, ok := v.Bool()
	switch {
	case !ok:
		return o.null(defaultNull)
	case b && o.TrueLabel != "":
		return o.TrueLabel
	case !b && o.FalseLabel != "":
		return o.FalseLabel
	}
	return strconv.FormatBool(b)
}

func formatNumber(v Value, o FormatOptions) string {
	n, ok := v.Num()
	if !ok {
		return o.null(defaultNull)
	}
	return humanize.Commaf(significant(n, o.Precision))
}

func formatPercent(v Value, o FormatOptions) string {
	p, ok := v.Pct()
	if !ok {
		return o.null(defaultNull)
	}
	return humanize.Commaf(significant(p.Shift(2).InexactFloat64(), o.Precision)) + "%"
}

func formatDate(v Value, o FormatOptions) string {
	t, ok := v.Time()
	if !ok {
		return o.null(defaultNull)
	}
	if o.DateFormat == DateDayFirst {
		return t.Format("02/01/2006")
	}
	return t.Format(time.DateOnly)
}

// significant rounds n to digits significant digits; 0 keeps n as is.
func significant(n float64, digits int) float64 {
	if digits <= 0 {
		return n
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(n, 'g', digits, 64), 64)
	if err != nil {
		return n
	}
	return r
}
