package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/pkg/queue"
	"go.uber.org/zap"
)

type storeSink struct {
	logger  *zap.Logger
	decoder TransactionDecoder
	repo    TransactionRepository
	metrics Metrics
}

// run consumes jobs until the queue is closed and drained or ctx is done.
func (s *storeSink) run(ctx context.Context, jobs *queue.Unbounded[storeJob]) {
	for {
		job, err := jobs.Receive(ctx)
		if err != nil {
			s.logger.Debug("store sink stopped", zap.Error(err))
			return
		}
		s.metrics.SetQueueDepth(storeQueueName, jobs.Len())

		started := time.Now()
		stored, err := s.store(ctx, job)
		s.metrics.ObserveStoreJob(err, stored, started)
		if err != nil {
			s.logger.Error("store block failed",
				zap.Uint64("height", job.height),
				zap.Int("stored", stored),
				zap.Error(err),
			)
		}
	}
}

// store inserts the transactions of one block in order and returns how many were inserted.
// The first failure stops the job; earlier inserts are kept.
func (s *storeSink) store(ctx context.Context, job storeJob) (int, error) {
	if job.block == nil || job.block.Transactions == nil {
		var parentSlot uint64
		if job.block != nil {
			parentSlot = job.block.ParentSlot
		}
		s.logger.Warn("block has no transactions",
			zap.Uint64("height", job.height),
			zap.Uint64("parent_slot", parentSlot),
		)
		return 0, nil
	}

	blockTime := job.block.Time()
	for i, entry := range job.block.Transactions {
		tx, err := s.decoder.Decode(entry)
		if err != nil {
			return i, fmt.Errorf("decode transaction %d of block %d: %w", i, job.height, err)
		}
		tx.BlockTime = blockTime

		if err := s.repo.InsertTransaction(ctx, tx); err != nil {
			return i, fmt.Errorf("insert transaction %s: %w", tx.Signature, err)
		}
	}

	s.logger.Info("block stored",
		zap.Uint64("height", job.height),
		zap.Int("transactions", len(job.block.Transactions)),
	)
	return len(job.block.Transactions), nil
}
