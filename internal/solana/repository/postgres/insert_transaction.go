package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

const insertTransactionQuery = `
INSERT INTO solana_transactions (
	signature,
	message,
	meta,
	block_time
) VALUES ($1, $2, $3, $4)`

// InsertTransaction appends one transaction. Duplicates are not rejected.
func (r *Repository) InsertTransaction(ctx context.Context, tx model.Transaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transaction", err, start)
	}()

	row, err := newTransactionRow(tx)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.Signature, err)
	}

	if _, err = r.pool.Exec(ctx, insertTransactionQuery, row.Signature, string(row.Message), string(row.Meta), row.BlockTime); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
