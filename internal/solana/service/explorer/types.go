package explorer

import (
	"context"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TransactionRepository interface {
		Transactions(ctx context.Context, filter model.TransactionFilter, limit, offset uint64) ([]model.Transaction, uint64, error)
	}
)
