package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts raw calculator fields into numbers. Blank or malformed
// numbers become zero; nothing here fails.
//
// A custom selling price counts as set when it has any non-space character,
// even if it does not parse (its value is then zero). A whitespace-only
// custom price is treated as unset and the suggested price applies.
func Parse(in Input) Values {
	custom := strings.TrimSpace(in.CustomSellingPrice)
	return Values{
		FixedCosts:           parseAmount(in.FixedCosts),
		VariableCostPerUnit:  parseAmount(in.VariableCostPerUnit),
		PlannedUnits:         parseUnits(in.PlannedUnits),
		DesiredMarginPercent: parseAmount(in.DesiredMarginPercent),
		CustomSellingPrice:   parseAmount(custom),
		HasCustomPrice:       custom != "",
	}
}

func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseUnits reads a unit count. Fractional input truncates toward zero.
func parseUnits(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	f := parseAmount(raw)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(math.Trunc(f))
}
