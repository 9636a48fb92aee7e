package clickhouse

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
) VALUES`

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

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionQuery)
	if err != nil {
		return fmt.Errorf("prepare transaction batch: %w", err)
	}

	if err = batch.Append(row.Signature, row.Message, row.Meta, row.BlockTime); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append transaction: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
