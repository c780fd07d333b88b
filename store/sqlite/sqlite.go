// Package sqlite is a store.DataHandler backed by SQLite. The schema is
// created on Open. Use ":memory:" as path for a throwaway database.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/alpacahq/bizcal/store"
	"github.com/alpacahq/bizcal/utils/date"
	"github.com/alpacahq/bizcal/utils/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	isin TEXT NOT NULL DEFAULT '',
	wkn  TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS transactions (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	asset_id        INTEGER NOT NULL DEFAULT 0,
	type            TEXT NOT NULL,
	position        REAL NOT NULL DEFAULT 0,
	amount          REAL NOT NULL DEFAULT 0,
	currency        TEXT NOT NULL DEFAULT '',
	trade_date      TEXT NOT NULL,
	settlement_date TEXT,
	note            TEXT NOT NULL DEFAULT ''
);
`

const (
	assetColumns       = `id, name, isin, wkn, note`
	transactionColumns = `id, asset_id, type, position, amount, currency, trade_date, settlement_date, note`
)

type DB struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at path.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite database %s", path)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	log.Debug("opened sqlite store %s", path)
	return &DB{db: db}, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) InsertAsset(ctx context.Context, a store.Asset) (int, error) {
	id, err := s.insert(ctx,
		`INSERT INTO assets (name, isin, wkn, note) VALUES (?, ?, ?, ?)`,
		a.Name, a.ISIN, a.WKN, a.Note)
	store.Observe(store.AssetEntity, "insert", err)
	return id, err
}

func (s *DB) GetAssetByID(ctx context.Context, id int) (store.Asset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = store.NotFound(store.AssetEntity, id)
	}
	store.Observe(store.AssetEntity, "get", err)
	return a, err
}

func (s *DB) GetAllAssets(ctx context.Context) ([]store.Asset, error) {
	assets, err := s.allAssets(ctx)
	store.Observe(store.AssetEntity, "get_all", err)
	return assets, err
}

func (s *DB) allAssets(ctx context.Context) ([]store.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query assets")
	}
	defer rows.Close()

	assets := []store.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, errors.Wrap(rows.Err(), "read assets")
}

func (s *DB) UpdateAsset(ctx context.Context, a store.Asset) error {
	var err error
	if a.ID == 0 {
		err = store.NoID(store.AssetEntity)
	} else {
		err = s.exec(ctx, store.AssetEntity, a.ID,
			`UPDATE assets SET name = ?, isin = ?, wkn = ?, note = ? WHERE id = ?`,
			a.Name, a.ISIN, a.WKN, a.Note, a.ID)
	}
	store.Observe(store.AssetEntity, "update", err)
	return err
}

func (s *DB) DeleteAsset(ctx context.Context, id int) error {
	err := s.exec(ctx, store.AssetEntity, id, `DELETE FROM assets WHERE id = ?`, id)
	store.Observe(store.AssetEntity, "delete", err)
	return err
}

func (s *DB) InsertTransaction(ctx context.Context, tx store.Transaction) (int, error) {
	if err := store.CheckTransaction(tx); err != nil {
		store.Observe(store.TransactionEntity, "insert", err)
		return 0, err
	}
	id, err := s.insert(ctx,
		`INSERT INTO transactions (asset_id, type, position, amount, currency, trade_date, settlement_date, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.AssetID, string(tx.Type), tx.Position, tx.Amount, tx.Currency,
		tx.TradeDate.String(), date.MakeNullDate(tx.SettlementDate), tx.Note)
	store.Observe(store.TransactionEntity, "insert", err)
	return id, err
}

func (s *DB) GetTransactionByID(ctx context.Context, id int) (store.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = store.NotFound(store.TransactionEntity, id)
	}
	store.Observe(store.TransactionEntity, "get", err)
	return tx, err
}

func (s *DB) GetAllTransactions(ctx context.Context) ([]store.Transaction, error) {
	txs, err := s.allTransactions(ctx)
	store.Observe(store.TransactionEntity, "get_all", err)
	return txs, err
}

func (s *DB) allTransactions(ctx context.Context) ([]store.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query transactions")
	}
	defer rows.Close()

	txs := []store.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, errors.Wrap(rows.Err(), "read transactions")
}

func (s *DB) UpdateTransaction(ctx context.Context, tx store.Transaction) error {
	err := store.CheckTransaction(tx)
	if err == nil {
		err = s.updateTransaction(ctx, tx)
	}
	store.Observe(store.TransactionEntity, "update", err)
	return err
}

func (s *DB) updateTransaction(ctx context.Context, tx store.Transaction) error {
	if tx.ID == 0 {
		return store.NoID(store.TransactionEntity)
	}
	return s.exec(ctx, store.TransactionEntity, tx.ID,
		`UPDATE transactions SET asset_id = ?, type = ?, position = ?, amount = ?, currency = ?,
		 trade_date = ?, settlement_date = ?, note = ? WHERE id = ?`,
		tx.AssetID, string(tx.Type), tx.Position, tx.Amount, tx.Currency,
		tx.TradeDate.String(), date.MakeNullDate(tx.SettlementDate), tx.Note, tx.ID)
}

func (s *DB) DeleteTransaction(ctx context.Context, id int) error {
	err := s.exec(ctx, store.TransactionEntity, id, `DELETE FROM transactions WHERE id = ?`, id)
	store.Observe(store.TransactionEntity, "delete", err)
	return err
}

func (s *DB) insert(ctx context.Context, query string, args ...interface{}) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "insert")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return int(id), nil
}

// exec runs an UPDATE or DELETE on a single row and reports ErrNotFound
// when no row has the id.
func (s *DB) exec(ctx context.Context, entity string, id int, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "%s id %d", entity, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return store.NotFound(entity, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row scanner) (store.Asset, error) {
	var a store.Asset
	if err := row.Scan(&a.ID, &a.Name, &a.ISIN, &a.WKN, &a.Note); err != nil {
		return store.Asset{}, err
	}
	return a, nil
}

func scanTransaction(row scanner) (store.Transaction, error) {
	var (
		tx         store.Transaction
		typ        string
		trade      date.NullDate
		settlement date.NullDate
	)
	err := row.Scan(&tx.ID, &tx.AssetID, &typ, &tx.Position, &tx.Amount, &tx.Currency,
		&trade, &settlement, &tx.Note)
	if err != nil {
		return store.Transaction{}, err
	}
	tx.Type = store.TransactionType(typ)
	tx.TradeDate = trade.Date
	tx.SettlementDate = settlement.Ptr()
	return tx, nil
}
