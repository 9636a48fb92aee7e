package node

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// RPC is the subset of node JSON-RPC methods the indexer relies on.
	RPC interface {
		GetHealth(ctx context.Context) (string, error)
		GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
		GetBlock(ctx context.Context, slot uint64, cfg BlockConfig) (*model.Block, error)
		GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	}
)

// BlockConfig is the getBlock configuration object.
type BlockConfig struct {
	Encoding                       solana.EncodingType `json:"encoding"`
	TransactionDetails             string              `json:"transactionDetails"`
	Rewards                        bool                `json:"rewards"`
	Commitment                     rpc.CommitmentType  `json:"commitment"`
	MaxSupportedTransactionVersion uint64              `json:"maxSupportedTransactionVersion"`
}
