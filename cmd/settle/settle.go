// Package settle implements the settle subcommand.
package settle

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/cmd/env"
	"github.com/alpacahq/bizcal/store"
	"github.com/alpacahq/bizcal/utils/log"
)

const (
	usage   = "settle"
	short   = "Set the settlement date of unsettled transactions"
	long    = "This command sets the settlement date of every stored transaction without one and prints the updated transactions. It needs the sqlite store driver; the memory store is empty on every run"
	example = "bizcal settle --config ./bizcal.yml --lag 2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewCmd returns the settle command bound to e.
func NewCmd(e *env.Env) *cobra.Command {
	var lag int
	c := &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("lag") {
				lag = e.Config.SettlementLag
			}
			if !e.PersistentStore() {
				log.Warn("store driver is %q, there are no transactions to settle", e.Config.Store.Driver)
			}
			h, closeStore, err := e.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					log.Error("failed to close the store: %v", err)
				}
			}()

			settled, err := Run(cmd.Context(), e, h, lag)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, tx := range settled {
				if err := enc.Encode(tx); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().IntVar(&lag, "lag", 0, "settlement lag in business days (default from the config file)")
	return c
}

// Run settles all transactions in h without a settlement date and returns
// them.
func Run(ctx context.Context, e *env.Env, h store.DataHandler, lag int) ([]store.Transaction, error) {
	if lag < 0 {
		return nil, errors.Errorf("settlement lag must not be negative: %d", lag)
	}
	cal, err := e.BusinessCalendar()
	if err != nil {
		return nil, err
	}
	txs, err := h.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var settled []store.Transaction
	for _, tx := range txs {
		if tx.SettlementDate != nil {
			continue
		}
		tx, err = store.Settle(cal, tx, lag)
		if err != nil {
			return settled, err
		}
		if err = h.UpdateTransaction(ctx, tx); err != nil {
			return settled, err
		}
		settled = append(settled, tx)
	}
	log.Info("settled %d of %d transactions with T+%d", len(settled), len(txs), lag)
	return settled, nil
}
