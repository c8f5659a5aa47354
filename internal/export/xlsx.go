package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/profitcalc/internal/display"
	"github.com/Simplici0/profitcalc/internal/quote"
)

const quotesSheet = "Cotizaciones"

var xlsxHeader = []any{
	"ID", "Referencia", "Fecha (UTC)", "Título", "Notas",
	"Costos fijos", "Costo variable", "Unidades", "Margen %", "Precio manual",
	"Costo por unidad", "Precio sugerido", "Precio final", "Ganancia por unidad",
	"Ingresos totales", "Costo total", "Ganancia neta", "Punto de equilibrio",
}

// XLSX writes all quotes to a single-sheet workbook. Computed figures are
// stored as numbers; the break-even column holds whole units or a label.
func XLSX(w io.Writer, quotes []quote.Quote, currencyCode string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quotesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(quotesSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, q := range quotes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locate row %d: %w", i+2, err)
		}

		var breakEven any = display.BreakEven(q.Result.BreakEvenUnits)
		if q.Result.BreakEvenUnits.Reachable() {
			breakEven = math.Ceil(float64(q.Result.BreakEvenUnits))
			if units, ok := q.Result.BreakEvenUnits.Units(); ok {
				breakEven = units
			}
		}

		row := []any{
			q.ID, q.Ref, q.CreatedAt.Format("2006-01-02 15:04:05"), q.Title, q.Notes,
			q.Input.FixedCosts, q.Input.VariableCostPerUnit, q.Input.PlannedUnits,
			q.Input.DesiredMarginPercent, q.Input.CustomSellingPrice,
			number(q.Result.CostPerUnit), number(q.Result.SuggestedPrice), number(q.Result.FinalPrice), number(q.Result.ProfitPerUnit),
			number(q.Result.TotalRevenue), number(q.Result.TotalCost), number(q.Result.TotalNetProfit), breakEven,
		}
		if err := f.SetSheetRow(quotesSheet, cell, &row); err != nil {
			return fmt.Errorf("write quote %d: %w", q.ID, err)
		}
	}

	if err := f.SetColWidth(quotesSheet, "D", "E", 30); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetCellValue(quotesSheet, "T1", "Moneda: "+currencyCode); err != nil {
		return fmt.Errorf("write currency note: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// number leaves the cell blank for amounts a spreadsheet cannot hold.
func number(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}
