package clickhouse

import (
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

func (s *RepositorySuite) TestInsertTransaction() {
	now := time.Now().UTC().Truncate(time.Millisecond)

	// duplicates are stored as-is
	s.seedTransactions([]model.Transaction{
		newTransaction("sig-A", now),
		newTransaction("sig-A", now),
	})

	s.Equal(uint64(2), s.countRows("solana_transactions"))
}
