package indexer

import (
	"context"

	"github.com/goodnatureofminers/soldag-backend/internal/clock"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

type blockFetcher struct {
	node Node
}

// Fetch makes up to retries+1 attempts, waiting one tick after every failed one,
// and returns the last error when none succeeds.
func (f *blockFetcher) Fetch(ctx context.Context, height uint64, retries int, ticker clock.Ticker) (*model.Block, error) {
	retries = max(retries, 0)

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		block, err := f.node.Block(ctx, height)
		if err == nil {
			return block, nil
		}
		lastErr = err
		if tickErr := ticker.Tick(ctx); tickErr != nil {
			return nil, tickErr
		}
	}
	return nil, lastErr
}
