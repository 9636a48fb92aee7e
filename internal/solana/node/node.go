package node

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

const (
	healthOK = "ok"

	// accountDataLength is the number of account data bytes requested per lookup.
	accountDataLength = 20
)

// Node exposes the node operations used by the indexer in domain terms.
type Node struct {
	rpc RPC
}

// NewNode builds a Node on top of an RPC client.
func NewNode(client RPC) (*Node, error) {
	if client == nil {
		return nil, errors.New("rpc client is required")
	}
	return &Node{rpc: client}, nil
}

// Health fails unless the node reports itself healthy.
func (n *Node) Health(ctx context.Context) error {
	status, err := n.rpc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("get health: %w", err)
	}
	if status != healthOK {
		return fmt.Errorf("node unhealthy: %q", status)
	}
	return nil
}

// CurrentHeight returns the slot of the latest finalized blockhash.
func (n *Node) CurrentHeight(ctx context.Context) (uint64, error) {
	res, err := n.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("get latest blockhash: %w", err)
	}
	if res == nil {
		return 0, errors.New("get latest blockhash: empty response")
	}
	return res.Context.Slot, nil
}

// Block fetches the finalized block at height with full json transactions and rewards.
func (n *Node) Block(ctx context.Context, height uint64) (*model.Block, error) {
	block, err := n.rpc.GetBlock(ctx, height, BlockConfig{
		Encoding:                       solana.EncodingJSON,
		TransactionDetails:             "full",
		Rewards:                        true,
		Commitment:                     rpc.CommitmentFinalized,
		MaxSupportedTransactionVersion: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	return block, nil
}

// Account reads the finalized state of an account, limited to the first accountDataLength bytes of data.
func (n *Node) Account(ctx context.Context, pubkey solana.PublicKey) (*model.Account, error) {
	offset, length := uint64(0), uint64(accountDataLength)
	res, err := n.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64Zstd,
		Commitment: rpc.CommitmentFinalized,
		DataSlice:  &rpc.DataSlice{Offset: &offset, Length: &length},
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (res == nil || res.Value == nil)) {
		return nil, fmt.Errorf("%w: %s", model.ErrAccountNotFound, pubkey)
	}
	if err != nil {
		return nil, fmt.Errorf("get account info %s: %w", pubkey, err)
	}

	account := &model.Account{
		Lamports:   res.Value.Lamports,
		Owner:      res.Value.Owner.String(),
		Executable: res.Value.Executable,
		RentEpoch:  rentEpoch(res.Value.RentEpoch),
	}
	if res.Value.Data != nil {
		account.Data = res.Value.Data.GetBinary()
	}
	return account, nil
}

// rentEpoch clamps the node's arbitrary-precision rent epoch to uint64.
func rentEpoch(v *big.Int) uint64 {
	switch {
	case v == nil || v.Sign() < 0:
		return 0
	case !v.IsUint64():
		return math.MaxUint64
	default:
		return v.Uint64()
	}
}
