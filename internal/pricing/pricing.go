package pricing

import (
	"encoding/json"
	"math"
)

// Input holds the calculator fields exactly as typed, so an empty field stays
// distinguishable from an explicit zero.
type Input struct {
	FixedCosts           string `json:"fixed_costs"`
	VariableCostPerUnit  string `json:"variable_cost_per_unit"`
	PlannedUnits         string `json:"planned_units"`
	DesiredMarginPercent string `json:"desired_margin_percent"`
	CustomSellingPrice   string `json:"custom_selling_price"`
}

// Values are the parsed calculator inputs.
type Values struct {
	FixedCosts           float64
	VariableCostPerUnit  float64
	PlannedUnits         int64
	DesiredMarginPercent float64
	CustomSellingPrice   float64
	HasCustomPrice       bool
}

// EffectiveUnits is the divisor used to amortize fixed costs per unit.
// Zero planned units amortize over a single unit instead.
func (v Values) EffectiveUnits() int64 {
	if v.PlannedUnits == 0 {
		return 1
	}
	return v.PlannedUnits
}

// BreakEven is the number of units at which revenue covers fixed costs.
type BreakEven float64

// Unreachable marks a calculation where per-unit profit is zero or negative.
var Unreachable = BreakEven(math.Inf(1))

// Reachable reports whether a finite break-even volume exists.
func (b BreakEven) Reachable() bool {
	return !math.IsInf(float64(b), 0) && !math.IsNaN(float64(b))
}

// Units returns the whole number of units needed to break even. It returns
// false when no break-even point exists or the count does not fit an int64.
func (b BreakEven) Units() (int64, bool) {
	if !b.Reachable() {
		return 0, false
	}
	units := math.Ceil(float64(b))
	if units >= math.MaxInt64 || units < math.MinInt64 {
		return 0, false
	}
	return int64(units), true
}

// MarshalJSON encodes an unreachable break-even as null.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.Reachable() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(b))
}

// UnmarshalJSON decodes null back into Unreachable.
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*b = Unreachable
		return nil
	}
	*b = BreakEven(*v)
	return nil
}

// Result contains every value derived from one set of inputs.
type Result struct {
	CostPerUnit    float64   `json:"cost_per_unit"`
	SuggestedPrice float64   `json:"suggested_price"`
	FinalPrice     float64   `json:"final_price"`
	ProfitPerUnit  float64   `json:"profit_per_unit"`
	TotalUnits     int64     `json:"total_units"`
	TotalNetProfit float64   `json:"total_net_profit"`
	TotalCost      float64   `json:"total_cost"`
	TotalRevenue   float64   `json:"total_revenue"`
	BreakEvenUnits BreakEven `json:"break_even_units"`
	CustomPrice    bool      `json:"custom_price"`
}

// resultJSON is the wire form of Result. Amounts that overflowed to an
// infinity or NaN have no JSON representation and travel as null.
type resultJSON struct {
	CostPerUnit    *float64  `json:"cost_per_unit"`
	SuggestedPrice *float64  `json:"suggested_price"`
	FinalPrice     *float64  `json:"final_price"`
	ProfitPerUnit  *float64  `json:"profit_per_unit"`
	TotalUnits     int64     `json:"total_units"`
	TotalNetProfit *float64  `json:"total_net_profit"`
	TotalCost      *float64  `json:"total_cost"`
	TotalRevenue   *float64  `json:"total_revenue"`
	BreakEvenUnits BreakEven `json:"break_even_units"`
	CustomPrice    bool      `json:"custom_price"`
}

// MarshalJSON encodes non-finite amounts as null.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		CostPerUnit:    finite(r.CostPerUnit),
		SuggestedPrice: finite(r.SuggestedPrice),
		FinalPrice:     finite(r.FinalPrice),
		ProfitPerUnit:  finite(r.ProfitPerUnit),
		TotalUnits:     r.TotalUnits,
		TotalNetProfit: finite(r.TotalNetProfit),
		TotalCost:      finite(r.TotalCost),
		TotalRevenue:   finite(r.TotalRevenue),
		BreakEvenUnits: r.BreakEvenUnits,
		CustomPrice:    r.CustomPrice,
	})
}

// UnmarshalJSON decodes null amounts as NaN.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Result{
		CostPerUnit:    orNaN(w.CostPerUnit),
		SuggestedPrice: orNaN(w.SuggestedPrice),
		FinalPrice:     orNaN(w.FinalPrice),
		ProfitPerUnit:  orNaN(w.ProfitPerUnit),
		TotalUnits:     w.TotalUnits,
		TotalNetProfit: orNaN(w.TotalNetProfit),
		TotalCost:      orNaN(w.TotalCost),
		TotalRevenue:   orNaN(w.TotalRevenue),
		BreakEvenUnits: w.BreakEvenUnits,
		CustomPrice:    w.CustomPrice,
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Calculate parses raw inputs and derives the pricing result.
func Calculate(in Input) Result {
	return Compute(Parse(in))
}

// Compute derives the pricing result from parsed values.
func Compute(v Values) Result {
	costPerUnit := v.FixedCosts/float64(v.EffectiveUnits()) + v.VariableCostPerUnit
	suggestedPrice := costPerUnit * (1 + v.DesiredMarginPercent/100)

	finalPrice := suggestedPrice
	if v.HasCustomPrice {
		finalPrice = v.CustomSellingPrice
	}

	profitPerUnit := finalPrice - costPerUnit
	totalUnits := float64(v.PlannedUnits)

	breakEven := Unreachable
	if profitPerUnit > 0 {
		breakEven = BreakEven(v.FixedCosts / profitPerUnit)
	}

	return Result{
		CostPerUnit:    costPerUnit,
		SuggestedPrice: suggestedPrice,
		FinalPrice:     finalPrice,
		ProfitPerUnit:  profitPerUnit,
		TotalUnits:     v.PlannedUnits,
		TotalNetProfit: profitPerUnit * totalUnits,
		TotalCost:      v.FixedCosts + v.VariableCostPerUnit*totalUnits,
		TotalRevenue:   finalPrice * totalUnits,
		BreakEvenUnits: breakEven,
		CustomPrice:    v.HasCustomPrice,
	}
}
