package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TransactionExplorer interface {
		Transactions(ctx context.Context, q model.TransactionQuery) (model.TransactionPage, error)
	}
	AccountReader interface {
		GetAccount(ctx context.Context, pubkey string) (*model.Account, error)
	}
	Metrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}
)
