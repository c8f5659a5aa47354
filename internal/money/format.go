// Package money renders amounts for display using one fixed numeric
// convention: "," groups thousands and "." separates decimals.
package money

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatStandard2 rounds to the nearest cent (half away from zero).
func FormatStandard2(v float64) string {
	return format(v, 2, false)
}

// FormatCeiling2 rounds up to the next cent so prices are never under-quoted.
func FormatCeiling2(v float64) string {
	return format(v, 2, true)
}

// FormatCeiling3 rounds up to the next 0.001.
func FormatCeiling3(v float64) string {
	return format(v, 3, true)
}

// FormatUnits renders a whole unit count with thousands grouping.
func FormatUnits(n int64) string {
	return humanize.Comma(n)
}

// FormatUnitsCeil rounds v up to a whole unit count and groups it. Unlike
// FormatUnits it accepts counts beyond the int64 range.
func FormatUnitsCeil(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return group(decimal.NewFromFloat(v).Ceil(), 0)
}

// NaN and infinities render as zero.
func format(v float64, places int32, ceil bool) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	d := decimal.NewFromFloat(v)
	if ceil {
		d = d.RoundCeil(places)
	} else {
		d = d.Round(places)
	}
	return group(d, places)
}

func group(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := humanize.BigComma(d.BigInt())
	if places <= 0 {
		return sign + whole
	}

	_, frac, _ := strings.Cut(d.StringFixed(places), ".")
	return sign + whole + "." + frac
}
