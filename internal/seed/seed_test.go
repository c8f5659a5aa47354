package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/profitcalc/internal/db"
	"github.com/Simplici0/profitcalc/internal/migrations"
	"github.com/Simplici0/profitcalc/internal/quote"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "seed-test.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, migrations.Up(ctx, database, goose.NopLogger()))

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		require.NoError(t, err, "iteration=%d", i)
		if i == 0 {
			assert.Equal(t, len(Demos), stats.Inserts)
			continue
		}
		assert.Equal(t, 0, stats.Inserts, "iteration=%d", i)
	}

	var count int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&count))
	assert.Equal(t, len(Demos), count)
}

func TestRunStoresComputedSnapshots(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "seed-snapshots.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, migrations.Up(ctx, database, goose.NopLogger()))
	_, err = Run(ctx, database)
	require.NoError(t, err)

	quotes, err := quote.NewStore(database).List(ctx, "sin producción")
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	got := quotes[0].Result
	assert.InDelta(t, 1010, got.CostPerUnit, 1e-9)
	assert.InDelta(t, 1000, got.TotalCost, 1e-9)
	assert.InDelta(t, 0, got.TotalRevenue, 1e-9)

	below, err := quote.NewStore(database).List(ctx, "debajo del costo")
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.False(t, below[0].Result.BreakEvenUnits.Reachable())
}
