package indexer

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/goodnatureofminers/soldag-backend/internal/clock"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Node interface {
		CurrentHeight(ctx context.Context) (uint64, error)
		Block(ctx context.Context, height uint64) (*model.Block, error)
	}
	AccountNode interface {
		Account(ctx context.Context, pubkey solana.PublicKey) (*model.Account, error)
	}
	BlockFetcher interface {
		Fetch(ctx context.Context, height uint64, retries int, ticker clock.Ticker) (*model.Block, error)
	}
	TransactionDecoder interface {
		Decode(entry model.EncodedTransactionWithMeta) (model.Transaction, error)
	}
	TransactionRepository interface {
		InsertTransaction(ctx context.Context, tx model.Transaction) error
	}
	Metrics interface {
		ObservePoll(err error, height uint64, started time.Time)
		ObserveGap(from, to uint64)
		ObserveCatchUp(err error, heights uint64, started time.Time)
		ObserveStoreJob(err error, transactions int, started time.Time)
		SetQueueDepth(queue string, depth int)
	}
)
