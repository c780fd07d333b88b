package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/store"
	"github.com/alpacahq/bizcal/store/sqlite"
	"github.com/alpacahq/bizcal/store/storetest"
	"github.com/alpacahq/bizcal/utils/date"
)

func TestDB(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.DataHandler {
		db, err := sqlite.Open(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	})
}

func TestDB_Persists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bizcal.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	id, err := db.InsertTransaction(ctx, store.Transaction{
		Type:      store.Dividend,
		Amount:    12.5,
		Currency:  "GBP",
		TradeDate: date.MustNew(2021, time.December, 24),
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	tx, err := db.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, store.Dividend, tx.Type)
	assert.Equal(t, date.MustNew(2021, time.December, 24), tx.TradeDate)
}
