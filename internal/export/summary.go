// Package export renders saved quotes as plain text, PDF and spreadsheets.
package export

import (
	"strings"

	"github.com/Simplici0/profitcalc/internal/display"
	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/quote"
)

// Line is one labelled value in a quote summary.
type Line struct {
	Label string
	Value string
}

// Section groups summary lines under a heading.
type Section struct {
	Title string
	Lines []Line
}

const notSet = "-"

// Summary lays out a quote for human-readable exports.
func Summary(q quote.Quote, cur money.Currency) []Section {
	v := display.New(q.Input, q.Result, cur)

	return []Section{
		{
			Title: "Datos ingresados",
			Lines: []Line{
				{Label: "Costos fijos", Value: orNotSet(q.Input.FixedCosts)},
				{Label: "Costo variable por unidad", Value: orNotSet(q.Input.VariableCostPerUnit)},
				{Label: "Unidades planificadas", Value: orNotSet(q.Input.PlannedUnits)},
				{Label: "Margen deseado (%)", Value: orNotSet(q.Input.DesiredMarginPercent)},
				{Label: "Precio de venta manual", Value: orNotSet(q.Input.CustomSellingPrice)},
			},
		},
		{
			Title: "Por unidad",
			Lines: []Line{
				{Label: "Precio sugerido", Value: v.SuggestedPrice},
				{Label: "Precio de venta", Value: v.FinalPrice},
				{Label: "Costo por unidad", Value: v.CostPerUnit},
				{Label: "Ganancia por unidad", Value: v.ProfitPerUnit},
			},
		},
		{
			Title: "Totales",
			Lines: []Line{
				{Label: "Unidades", Value: v.TotalUnits},
				{Label: "Ingresos totales", Value: v.TotalRevenue},
				{Label: "Costo total", Value: v.TotalCost},
				{Label: "Ganancia neta", Value: v.TotalNetProfit},
				{Label: "Punto de equilibrio", Value: v.BreakEven},
			},
		},
	}
}

func orNotSet(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return notSet
	}
	return raw
}
