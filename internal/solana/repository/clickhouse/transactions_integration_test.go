package clickhouse

import (
	"fmt"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

func (s *RepositorySuite) TestTransactionsPagination() {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	txs := make([]model.Transaction, 0, 20)
	for i := range 20 {
		txs = append(txs, newTransaction(fmt.Sprintf("sig-%02d", i), day))
	}
	s.seedTransactions(txs)

	s.metrics.EXPECT().Observe("transactions", gomock.Nil(), gomock.Any()).Times(2)

	first, total, err := s.repo.Transactions(s.testCtx, model.TransactionFilter{}, 10, 0)
	s.Require().NoError(err)
	s.Equal(uint64(20), total)
	s.Require().Len(first, 10)
	s.Equal("sig-00", first[0].Signature)
	s.Equal(uint64(5000), first[0].Meta.Fee)

	second, total, err := s.repo.Transactions(s.testCtx, model.TransactionFilter{}, 10, 10)
	s.Require().NoError(err)
	s.Equal(uint64(20), total)
	s.Require().Len(second, 10)
	s.Equal("sig-10", second[0].Signature)
}

func (s *RepositorySuite) TestTransactionsFilters() {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.seedTransactions([]model.Transaction{
		newTransaction("sig-A", day),
		newTransaction("sig-B", day.AddDate(0, 0, 3)),
	})

	s.metrics.EXPECT().Observe("transactions", gomock.Nil(), gomock.Any()).Times(3)

	bySignature, total, err := s.repo.Transactions(s.testCtx, model.TransactionFilter{Signature: "sig-A"}, 10, 0)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Require().Len(bySignature, 1)
	s.Equal("sig-A", bySignature[0].Signature)
	s.Require().NotNil(bySignature[0].BlockTime)
	s.True(bySignature[0].BlockTime.Equal(day))

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	byDay, total, err := s.repo.Transactions(s.testCtx, model.TransactionFilter{BlockTimeFrom: &from, BlockTimeTo: &to}, 10, 0)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Require().Len(byDay, 1)
	s.Equal("sig-B", byDay[0].Signature)

	none, total, err := s.repo.Transactions(s.testCtx, model.TransactionFilter{Signature: "missing"}, 10, 0)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(none)
}
