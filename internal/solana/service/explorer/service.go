// Package explorer answers paginated transaction queries over the store.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

type Service struct {
	repo TransactionRepository
}

func NewService(repo TransactionRepository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("explorer repository is required")
	}
	return &Service{repo: repo}, nil
}

// Transactions returns the page selected by q. A day selects [00:00 UTC, next day 00:00 UTC].
// Next is set to count+offset while more matches remain; an empty page size never advances.
func (s *Service) Transactions(ctx context.Context, q model.TransactionQuery) (model.TransactionPage, error) {
	filter := model.TransactionFilter{Signature: q.Signature}
	if q.Day != nil {
		from, to := dayRange(*q.Day)
		filter.BlockTimeFrom = &from
		filter.BlockTimeTo = &to
	}

	txs, total, err := s.repo.Transactions(ctx, filter, q.Count, q.Offset)
	if err != nil {
		return model.TransactionPage{}, fmt.Errorf("query transactions: %w", err)
	}
	if txs == nil {
		txs = []model.Transaction{}
	}

	page := model.TransactionPage{Transactions: txs}
	if next := saturatingAdd(q.Count, q.Offset); q.Count > 0 && next < total {
		page.Next = &next
	}
	return page, nil
}

func dayRange(day time.Time) (time.Time, time.Time) {
	y, m, d := day.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
