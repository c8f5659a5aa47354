// Package display turns a pricing result into the strings shown to users.
//
// Prices a customer is quoted (suggested price, cost per unit) round up to the
// cent. Aggregates (revenue, profit, total cost) round to the nearest cent.
package display

import (
	"strings"

	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/pricing"
)

const (
	noBreakEven     = "Sin punto de equilibrio"
	unitsSuffix     = " unidades"
	suggestedSuffix = " (sugerido)"
)

// View holds every formatted figure of one calculation.
type View struct {
	SuggestedPrice     string `json:"suggested_price"`
	FinalPrice         string `json:"final_price"`
	FinalIsSuggested   bool   `json:"final_is_suggested"`
	CostPerUnit        string `json:"cost_per_unit"`
	CostPerUnitPrecise string `json:"cost_per_unit_precise"`
	BreakEvenPrice     string `json:"break_even_price"`
	ProfitPerUnit      string `json:"profit_per_unit"`
	TotalUnits         string `json:"total_units"`
	TotalRevenue       string `json:"total_revenue"`
	TotalNetProfit     string `json:"total_net_profit"`
	TotalCost          string `json:"total_cost"`
	BreakEven          string `json:"break_even"`
	HasBreakEven       bool   `json:"has_break_even"`
	ProfitPerUnitLoss  bool   `json:"profit_per_unit_loss"`
	NetProfitLoss      bool   `json:"net_profit_loss"`
}

// New formats r. in supplies the custom price as the user typed it.
func New(in pricing.Input, r pricing.Result, cur money.Currency) View {
	v := View{
		SuggestedPrice:     cur.Ceiling2(r.SuggestedPrice),
		CostPerUnit:        cur.Ceiling2(r.CostPerUnit),
		CostPerUnitPrecise: cur.Ceiling3(r.CostPerUnit),
		BreakEvenPrice:     cur.Ceiling2(r.CostPerUnit),
		ProfitPerUnit:      cur.Standard2(r.ProfitPerUnit),
		TotalUnits:         money.FormatUnits(r.TotalUnits),
		TotalRevenue:       cur.Standard2(r.TotalRevenue),
		TotalNetProfit:     cur.Standard2(r.TotalNetProfit),
		TotalCost:          cur.Standard2(r.TotalCost),
		BreakEven:          BreakEven(r.BreakEvenUnits),
		HasBreakEven:       r.BreakEvenUnits.Reachable(),
		ProfitPerUnitLoss:  r.ProfitPerUnit < 0,
		NetProfitLoss:      r.TotalNetProfit < 0,
	}

	if r.CustomPrice {
		v.FinalPrice = cur.Literal(strings.TrimSpace(in.CustomSellingPrice))
	} else {
		v.FinalPrice = v.SuggestedPrice + suggestedSuffix
		v.FinalIsSuggested = true
	}

	return v
}

// BreakEven renders a break-even volume as whole units.
func BreakEven(b pricing.BreakEven) string {
	if !b.Reachable() {
		return noBreakEven
	}
	return money.FormatUnitsCeil(float64(b)) + unitsSuffix
}
