package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

// AccountReader looks up current account state directly on the node.
type AccountReader struct {
	node AccountNode
}

func NewAccountReader(node AccountNode) (*AccountReader, error) {
	if node == nil {
		return nil, errors.New("account node is required")
	}
	return &AccountReader{node: node}, nil
}

// GetAccount validates pubkey as base58 and reads the account. Node errors are returned unchanged.
func (r *AccountReader) GetAccount(ctx context.Context, pubkey string) (*model.Account, error) {
	key, err := solana.PublicKeyFromBase58(pubkey)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", model.ErrInvalidKey, pubkey, err)
	}
	return r.node.Account(ctx, key)
}
