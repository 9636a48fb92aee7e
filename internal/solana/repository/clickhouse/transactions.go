package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
	"golang.org/x/sync/errgroup"
)

const (
	countTransactionsQuery  = `SELECT count() AS total FROM solana_transactions`
	selectTransactionsQuery = `SELECT signature, message, meta, block_time FROM solana_transactions`
	transactionsPageSuffix  = ` ORDER BY inserted_at, signature LIMIT ? OFFSET ?`
)

// Transactions returns one page of transactions matching filter in insertion order,
// together with the total number of matches.
func (r *Repository) Transactions(ctx context.Context, filter model.TransactionFilter, limit, offset uint64) (txs []model.Transaction, total uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transactions", err, start)
	}()

	where, args := transactionsWhere(filter)
	pageArgs := append(append(make([]any, 0, len(args)+2), args...), limit, offset)

	var (
		counts []countRow
		rows   []transactionRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.conn.Select(gctx, &counts, countTransactionsQuery+where, args...); err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.conn.Select(gctx, &rows, selectTransactionsQuery+where+transactionsPageSuffix, pageArgs...); err != nil {
			return fmt.Errorf("select transactions: %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, 0, err
	}

	if len(counts) > 0 {
		total = counts[0].Total
	}
	txs = make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, convErr := row.toModel()
		if convErr != nil {
			err = convErr
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	return txs, total, nil
}

func transactionsWhere(filter model.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Signature != "" {
		conds = append(conds, "signature = ?")
		args = append(args, filter.Signature)
	}
	if filter.BlockTimeFrom != nil {
		conds = append(conds, "block_time >= ?")
		args = append(args, filter.BlockTimeFrom.UTC())
	}
	if filter.BlockTimeTo != nil {
		conds = append(conds, "block_time <= ?")
		args = append(args, filter.BlockTimeTo.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
