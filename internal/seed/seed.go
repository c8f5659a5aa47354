package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/profitcalc/internal/pricing"
)

// Demo is a quote inserted by the startup seed.
type Demo struct {
	Title string
	Notes string
	Input pricing.Input
}

// Demos are the example scenarios offered on a fresh install.
var Demos = []Demo{
	{
		Title: "Ejemplo: lote de 10 unidades",
		Notes: "Costos fijos 5000, variable 15 por unidad, margen 20%.",
		Input: pricing.Input{FixedCosts: "5000", VariableCostPerUnit: "15", PlannedUnits: "10", DesiredMarginPercent: "20"},
	},
	{
		Title: "Ejemplo: sin producción planificada",
		Notes: "Cero unidades: el costo unitario reparte los fijos sobre una unidad.",
		Input: pricing.Input{FixedCosts: "1000", VariableCostPerUnit: "10", PlannedUnits: "0", DesiredMarginPercent: "50"},
	},
	{
		Title: "Ejemplo: precio por debajo del costo",
		Notes: "Precio manual menor al costo unitario: no hay punto de equilibrio.",
		Input: pricing.Input{FixedCosts: "5000", VariableCostPerUnit: "15", PlannedUnits: "10", DesiredMarginPercent: "20", CustomSellingPrice: "400"},
	},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the demo quotes that are not present yet. It is idempotent.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, demo := range Demos {
		if err := ensureDemo(ctx, tx, demo, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureDemo(ctx context.Context, tx *sql.Tx, demo Demo, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM quotes WHERE title = ? LIMIT 1)`, demo.Title).Scan(&exists); err != nil {
		return fmt.Errorf("check demo quote existence: %w", err)
	}
	if exists {
		return nil
	}

	inputJSON, err := json.Marshal(demo.Input)
	if err != nil {
		return fmt.Errorf("encode demo inputs: %w", err)
	}
	resultJSON, err := json.Marshal(pricing.Calculate(demo.Input))
	if err != nil {
		return fmt.Errorf("encode demo result: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quotes (ref, created_at, title, notes, inputs_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), time.Now().UTC().Format("2006-01-02 15:04:05"), demo.Title, demo.Notes, string(inputJSON), string(resultJSON)); err != nil {
		return fmt.Errorf("insert demo quote %q: %w", demo.Title, err)
	}
	stats.Inserts++
	return nil
}
