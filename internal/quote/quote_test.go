package quote

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/profitcalc/internal/db"
	"github.com/Simplici0/profitcalc/internal/migrations"
	"github.com/Simplici0/profitcalc/internal/pricing"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(ctx, database, goose.NopLogger()))
	return NewStore(database), database
}

func fixedClock(times ...string) func() time.Time {
	i := 0
	return func() time.Time {
		ts, err := time.Parse(timeLayout, times[i])
		if err != nil {
			panic(err)
		}
		i++
		return ts
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := pricing.Input{FixedCosts: "5000", VariableCostPerUnit: "15", PlannedUnits: "10", DesiredMarginPercent: "20"}
	saved, err := store.Save(ctx, Quote{Title: "  Coffee mugs  ", Notes: "first batch", Input: in, Result: pricing.Calculate(in)})
	require.NoError(t, err)

	assert.Positive(t, saved.ID)
	assert.Equal(t, "Coffee mugs", saved.Title)
	_, err = uuid.Parse(saved.Ref)
	assert.NoError(t, err)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Ref, got.Ref)
	assert.Equal(t, in, got.Input)
	assert.Equal(t, "first batch", got.Notes)
	assert.InDelta(t, 618, got.Result.SuggestedPrice, 1e-9)
	units, ok := got.Result.BreakEvenUnits.Units()
	require.True(t, ok)
	assert.Equal(t, int64(49), units)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestSaveKeepsUnreachableBreakEven(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := pricing.Input{FixedCosts: "100", VariableCostPerUnit: "10", CustomSellingPrice: "5"}
	saved, err := store.Save(ctx, Quote{Title: "Loss leader", Input: in, Result: pricing.Calculate(in)})
	require.NoError(t, err)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.Result.BreakEvenUnits.Reachable())
}

func TestSaveRequiresTitle(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Save(context.Background(), Quote{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestGetReadsSnapshotWithoutRecalculation(t *testing.T) {
	store, database := newTestStore(t)

	_, err := database.Exec(`
		INSERT INTO quotes (id, ref, created_at, title, notes, inputs_json, result_json)
		VALUES (7, 'ref-7', '2024-02-01 14:00:00', 'Snapshot', NULL,
			'{"fixed_costs":"1","variable_cost_per_unit":"1","planned_units":"1","desired_margin_percent":"0","custom_selling_price":""}',
			'{"cost_per_unit":123.45,"suggested_price":999.99,"final_price":999.99,"total_units":3,"break_even_units":null}')
	`)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 123.45, got.Result.CostPerUnit)
	assert.Equal(t, 999.99, got.Result.SuggestedPrice)
	assert.Equal(t, int64(3), got.Result.TotalUnits)
	assert.False(t, got.Result.BreakEvenUnits.Reachable())
	assert.Equal(t, "", got.Notes)
	assert.Equal(t, time.Date(2024, 2, 1, 14, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByDateDesc(t *testing.T) {
	store, _ := newTestStore(t)
	store.now = fixedClock("2024-01-01 10:00:00", "2024-01-03 12:00:00", "2024-01-02 11:00:00")
	ctx := context.Background()

	for _, title := range []string{"Primera", "Tercera", "Segunda"} {
		_, err := store.Save(ctx, Quote{Title: title})
		require.NoError(t, err)
	}

	quotes, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "Tercera", quotes[0].Title)
	assert.Equal(t, "Segunda", quotes[1].Title)
	assert.Equal(t, "Primera", quotes[2].Title)
}

func TestListFiltersByTitleAndNotes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, q := range []Quote{
		{Title: "Casa", Notes: "impresión roja"},
		{Title: "Llaveros", Notes: "cliente vip"},
		{Title: "Prototipo", Notes: "urgente para casa"},
	} {
		_, err := store.Save(ctx, q)
		require.NoError(t, err)
	}

	byTitle, err := store.List(ctx, "Llave")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Llaveros", byTitle[0].Title)

	byNotes, err := store.List(ctx, "casa")
	require.NoError(t, err)
	assert.Len(t, byNotes, 2)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, Quote{Title: "Temporary"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))
	assert.ErrorIs(t, store.Delete(ctx, saved.ID), ErrNotFound)

	_, err = store.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveKeepsOverflowedFigures(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := pricing.Input{FixedCosts: "1e308", VariableCostPerUnit: "1e308", PlannedUnits: "1", DesiredMarginPercent: "20"}
	saved, err := store.Save(ctx, Quote{Title: "Overflow", Input: in, Result: pricing.Calculate(in)})
	require.NoError(t, err)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Result.CostPerUnit))
	assert.Equal(t, int64(1), got.Result.TotalUnits)
	assert.False(t, got.Result.BreakEvenUnits.Reachable())
}

func TestListMatchesWildcardsLiterally(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Descuento 50%", "Lote 500", "lote_a", "loteXa"} {
		_, err := store.Save(ctx, Quote{Title: title})
		require.NoError(t, err)
	}

	percent, err := store.List(ctx, "50%")
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "Descuento 50%", percent[0].Title)

	underscore, err := store.List(ctx, "e_a")
	require.NoError(t, err)
	require.Len(t, underscore, 1)
	assert.Equal(t, "lote_a", underscore[0].Title)
}
