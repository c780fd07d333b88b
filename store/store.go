// Package store defines the records kept next to the calendars (assets
// and the transactions on them) and the DataHandler interface to persist
// them. Implementations live in the memory and sqlite sub packages.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/metrics"
	"github.com/alpacahq/bizcal/utils/date"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
	// ErrUpdateFailed is returned when updating a record that has no ID yet.
	ErrUpdateFailed = errors.New("update failed")
	// ErrNoTradeDate is returned when storing or settling a transaction
	// without a trade date.
	ErrNoTradeDate = errors.New("transaction has no trade date")
)

// Entity names used in errors and metrics labels.
const (
	AssetEntity       = "asset"
	TransactionEntity = "transaction"
)

// Asset is a tradable instrument. ID is assigned on insert; zero means
// the asset has not been stored yet.
type Asset struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	ISIN string `json:"isin,omitempty"`
	WKN  string `json:"wkn,omitempty"`
	Note string `json:"note,omitempty"`
}

type TransactionType string

const (
	Buy      TransactionType = "buy"
	Sell     TransactionType = "sell"
	Dividend TransactionType = "dividend"
	Interest TransactionType = "interest"
	Fee      TransactionType = "fee"
	Tax      TransactionType = "tax"
	Cash     TransactionType = "cash"
)

// Transaction is a cash flow, optionally on an asset (AssetID 0 means a
// pure cash transaction). ID is assigned on insert.
type Transaction struct {
	ID             int             `json:"id"`
	AssetID        int             `json:"asset_id,omitempty"`
	Type           TransactionType `json:"type"`
	Position       float64         `json:"position,omitempty"`
	Amount         float64         `json:"amount"`
	Currency       string          `json:"currency"`
	TradeDate      date.Date       `json:"trade_date"`
	SettlementDate *date.Date      `json:"settlement_date,omitempty"`
	Note           string          `json:"note,omitempty"`
}

// DataHandler stores assets and transactions. Each entity kind has its own
// auto-incrementing ID sequence; IDs are never reused.
type DataHandler interface {
	InsertAsset(ctx context.Context, asset Asset) (int, error)
	GetAssetByID(ctx context.Context, id int) (Asset, error)
	GetAllAssets(ctx context.Context) ([]Asset, error)
	UpdateAsset(ctx context.Context, asset Asset) error
	DeleteAsset(ctx context.Context, id int) error

	InsertTransaction(ctx context.Context, tx Transaction) (int, error)
	GetTransactionByID(ctx context.Context, id int) (Transaction, error)
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
	UpdateTransaction(ctx context.Context, tx Transaction) error
	DeleteTransaction(ctx context.Context, id int) error
}

// NotFound returns ErrNotFound annotated with the entity and id.
func NotFound(entity string, id int) error {
	return errors.Wrapf(ErrNotFound, "%s id %d", entity, id)
}

// NoID returns ErrUpdateFailed for a record that has not been inserted.
func NoID(entity string) error {
	return errors.Wrapf(ErrUpdateFailed, "%s has no id yet, can't update new value", entity)
}

// CheckTransaction returns ErrNoTradeDate if tx has no trade date.
func CheckTransaction(tx Transaction) error {
	if tx.TradeDate.IsZero() {
		return errors.Wrapf(ErrNoTradeDate, "%s id %d", TransactionEntity, tx.ID)
	}
	return nil
}

// Observe counts a store operation in the metrics.
func Observe(entity, op string, err error) {
	metrics.StoreOperationsTotal.WithLabelValues(entity, op, metrics.Result(err)).Inc()
}

// Settle sets the settlement date of tx to lag business days after its
// trade date according to cal.
func Settle(cal *calendar.Calendar, tx Transaction, lag int) (Transaction, error) {
	if err := CheckTransaction(tx); err != nil {
		return tx, err
	}
	d, err := cal.AddBusinessDays(tx.TradeDate, lag)
	if err != nil {
		return tx, errors.Wrapf(err, "settle transaction %d", tx.ID)
	}
	tx.SettlementDate = &d
	return tx, nil
}
