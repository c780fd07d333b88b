// Package storetest runs the same behavioral tests against every
// store.DataHandler implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/store"
	"github.com/alpacahq/bizcal/utils/date"
)

// Run tests the DataHandler returned by newHandler. newHandler is called
// once per subtest and must return an empty store.
func Run(t *testing.T, newHandler func(t *testing.T) store.DataHandler) {
	t.Helper()

	t.Run("assets", func(t *testing.T) {
		testAssets(t, newHandler(t))
	})
	t.Run("transactions", func(t *testing.T) {
		testTransactions(t, newHandler(t))
	})
	t.Run("independent id sequences", func(t *testing.T) {
		testIDSequences(t, newHandler(t))
	})
	t.Run("transactions need a trade date", func(t *testing.T) {
		testNoTradeDate(t, newHandler(t))
	})
}

func testAssets(t *testing.T, h store.DataHandler) {
	ctx := context.Background()

	all, err := h.GetAllAssets(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	id, err := h.InsertAsset(ctx, store.Asset{Name: "Siemens AG", ISIN: "DE0007236101", WKN: "723610"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	id2, err := h.InsertAsset(ctx, store.Asset{Name: "BASF SE"})
	require.NoError(t, err)
	assert.Equal(t, 2, id2)

	got, err := h.GetAssetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, store.Asset{ID: 1, Name: "Siemens AG", ISIN: "DE0007236101", WKN: "723610"}, got)

	got.Note = "industrials"
	require.NoError(t, h.UpdateAsset(ctx, got))
	updated, err := h.GetAssetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "industrials", updated.Note)

	err = h.UpdateAsset(ctx, store.Asset{Name: "no id"})
	assert.ErrorIs(t, err, store.ErrUpdateFailed)
	err = h.UpdateAsset(ctx, store.Asset{ID: 42, Name: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err = h.GetAllAssets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)

	require.NoError(t, h.DeleteAsset(ctx, id))
	_, err = h.GetAssetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, h.DeleteAsset(ctx, id), store.ErrNotFound)

	// ids are not reused after a delete
	id3, err := h.InsertAsset(ctx, store.Asset{Name: "Bayer AG"})
	require.NoError(t, err)
	assert.Equal(t, 3, id3)
}

func testTransactions(t *testing.T, h store.DataHandler) {
	ctx := context.Background()
	settlement := date.MustNew(2020, time.April, 15)

	tx := store.Transaction{
		AssetID:        1,
		Type:           store.Buy,
		Position:       10,
		Amount:         -1234.5,
		Currency:       "EUR",
		TradeDate:      date.MustNew(2020, time.April, 9),
		SettlementDate: &settlement,
		Note:           "T+2",
	}
	id, err := h.InsertTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := h.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	tx.ID = id
	assert.Equal(t, tx, got)

	cash := store.Transaction{Type: store.Cash, Amount: 500, Currency: "EUR", TradeDate: date.MustNew(2020, time.May, 4)}
	id2, err := h.InsertTransaction(ctx, cash)
	require.NoError(t, err)
	got2, err := h.GetTransactionByID(ctx, id2)
	require.NoError(t, err)
	assert.Nil(t, got2.SettlementDate)
	assert.Equal(t, 0, got2.AssetID)

	got2.Amount = 600
	require.NoError(t, h.UpdateTransaction(ctx, got2))
	got2, err = h.GetTransactionByID(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, 600.0, got2.Amount)

	assert.ErrorIs(t, h.UpdateTransaction(ctx, cash), store.ErrUpdateFailed)
	cash.ID = 99
	assert.ErrorIs(t, h.UpdateTransaction(ctx, cash), store.ErrNotFound)

	all, err := h.GetAllTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, h.DeleteTransaction(ctx, id))
	assert.ErrorIs(t, h.DeleteTransaction(ctx, id), store.ErrNotFound)
	_, err = h.GetTransactionByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testIDSequences(t *testing.T, h store.DataHandler) {
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		id, err := h.InsertAsset(ctx, store.Asset{Name: "asset"})
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}
	id, err := h.InsertTransaction(ctx, store.Transaction{Type: store.Fee, Currency: "EUR", TradeDate: date.MustNew(2020, 1, 2)})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func testNoTradeDate(t *testing.T, h store.DataHandler) {
	ctx := context.Background()

	_, err := h.InsertTransaction(ctx, store.Transaction{Type: store.Cash, Amount: 10, Currency: "EUR"})
	assert.ErrorIs(t, err, store.ErrNoTradeDate)

	id, err := h.InsertTransaction(ctx, store.Transaction{
		Type:      store.Cash,
		Amount:    10,
		Currency:  "EUR",
		TradeDate: date.MustNew(2020, time.April, 9),
	})
	require.NoError(t, err)

	tx, err := h.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	tx.TradeDate = date.Date{}
	assert.ErrorIs(t, h.UpdateTransaction(ctx, tx), store.ErrNoTradeDate)

	// the rejected writes left the table readable and unchanged
	all, err := h.GetAllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, date.MustNew(2020, time.April, 9), all[0].TradeDate)
}
