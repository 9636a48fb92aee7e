package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
	"github.com/goodnatureofminers/soldag-backend/pkg/safe"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const (
	countTransactionsQuery  = `SELECT count(*) FROM solana_transactions`
	selectTransactionsQuery = `SELECT signature, message, meta, block_time FROM solana_transactions`
)

// Transactions returns one page of transactions matching filter in insertion order,
// together with the total number of matches.
func (r *Repository) Transactions(ctx context.Context, filter model.TransactionFilter, limit, offset uint64) (txs []model.Transaction, total uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transactions", err, start)
	}()

	pgLimit, err := safe.Int64(limit)
	if err != nil {
		return nil, 0, fmt.Errorf("limit: %w", err)
	}
	pgOffset, err := safe.Int64(offset)
	if err != nil {
		return nil, 0, fmt.Errorf("offset: %w", err)
	}

	where, args := transactionsWhere(filter)
	n := len(args)
	pageQuery := selectTransactionsQuery + where +
		" ORDER BY id LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	pageArgs := append(append(make([]any, 0, n+2), args...), pgLimit, pgOffset)

	var (
		count int64
		rows  []transactionRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countTransactionsQuery+where, args...).Scan(&count); err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		result, err := r.pool.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("select transactions: %w", err)
		}
		rows, err = pgx.CollectRows(result, pgx.RowToStructByName[transactionRow])
		if err != nil {
			return fmt.Errorf("scan transactions: %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, 0, err
	}

	if total, err = safe.Uint64(count); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
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
	placeholder := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Signature != "" {
		conds = append(conds, "signature = "+placeholder(filter.Signature))
	}
	if filter.BlockTimeFrom != nil {
		conds = append(conds, "block_time >= "+placeholder(filter.BlockTimeFrom.UTC()))
	}
	if filter.BlockTimeTo != nil {
		conds = append(conds, "block_time <= "+placeholder(filter.BlockTimeTo.UTC()))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
