// Package memory is an in-memory store.DataHandler. It is safe for
// concurrent use; all data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alpacahq/bizcal/store"
)

type InMemoryDB struct {
	mu                sync.RWMutex
	assets            map[int]store.Asset
	transactions      map[int]store.Transaction
	nextAssetID       int
	nextTransactionID int
}

func New() *InMemoryDB {
	return &InMemoryDB{
		assets:            map[int]store.Asset{},
		transactions:      map[int]store.Transaction{},
		nextAssetID:       1,
		nextTransactionID: 1,
	}
}

func (db *InMemoryDB) InsertAsset(_ context.Context, asset store.Asset) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := db.nextAssetID
	asset.ID = id
	db.assets[id] = asset
	db.nextAssetID++
	store.Observe(store.AssetEntity, "insert", nil)
	return id, nil
}

func (db *InMemoryDB) GetAssetByID(_ context.Context, id int) (store.Asset, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	asset, err := getByID(db.assets, store.AssetEntity, id)
	store.Observe(store.AssetEntity, "get", err)
	return asset, err
}

func (db *InMemoryDB) GetAllAssets(_ context.Context) ([]store.Asset, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	store.Observe(store.AssetEntity, "get_all", nil)
	return getAll(db.assets), nil
}

func (db *InMemoryDB) UpdateAsset(_ context.Context, asset store.Asset) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := update(db.assets, store.AssetEntity, asset.ID, asset)
	store.Observe(store.AssetEntity, "update", err)
	return err
}

func (db *InMemoryDB) DeleteAsset(_ context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := remove(db.assets, store.AssetEntity, id)
	store.Observe(store.AssetEntity, "delete", err)
	return err
}

func (db *InMemoryDB) InsertTransaction(_ context.Context, tx store.Transaction) (int, error) {
	if err := store.CheckTransaction(tx); err != nil {
		store.Observe(store.TransactionEntity, "insert", err)
		return 0, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	id := db.nextTransactionID
	tx.ID = id
	db.transactions[id] = tx
	db.nextTransactionID++
	store.Observe(store.TransactionEntity, "insert", nil)
	return id, nil
}

func (db *InMemoryDB) GetTransactionByID(_ context.Context, id int) (store.Transaction, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tx, err := getByID(db.transactions, store.TransactionEntity, id)
	store.Observe(store.TransactionEntity, "get", err)
	return tx, err
}

func (db *InMemoryDB) GetAllTransactions(_ context.Context) ([]store.Transaction, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	store.Observe(store.TransactionEntity, "get_all", nil)
	return getAll(db.transactions), nil
}

func (db *InMemoryDB) UpdateTransaction(_ context.Context, tx store.Transaction) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := store.CheckTransaction(tx)
	if err == nil {
		err = update(db.transactions, store.TransactionEntity, tx.ID, tx)
	}
	store.Observe(store.TransactionEntity, "update", err)
	return err
}

func (db *InMemoryDB) DeleteTransaction(_ context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := remove(db.transactions, store.TransactionEntity, id)
	store.Observe(store.TransactionEntity, "delete", err)
	return err
}

func getByID[T any](m map[int]T, entity string, id int) (T, error) {
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, store.NotFound(entity, id)
	}
	return v, nil
}

func getAll[T any](m map[int]T) []T {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	all := make([]T, 0, len(ids))
	for _, id := range ids {
		all = append(all, m[id])
	}
	return all
}

func update[T any](m map[int]T, entity string, id int, v T) error {
	if id == 0 {
		return store.NoID(entity)
	}
	if _, ok := m[id]; !ok {
		return store.NotFound(entity, id)
	}
	m[id] = v
	return nil
}

func remove[T any](m map[int]T, entity string, id int) error {
	if _, ok := m[id]; !ok {
		return store.NotFound(entity, id)
	}
	delete(m, id)
	return nil
}
