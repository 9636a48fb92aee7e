package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/clock"
	"github.com/goodnatureofminers/soldag-backend/pkg/queue"
	"go.uber.org/zap"
)

type catchUpWorker struct {
	logger    *zap.Logger
	fetcher   BlockFetcher
	metrics   Metrics
	retries   int
	newTicker func() clock.Ticker
}

// run backfills requests one at a time. It owns the store queue once its own queue is
// closed, and closes it on exit.
func (w *catchUpWorker) run(ctx context.Context, jobs *queue.Unbounded[catchUpJob], stores *queue.Unbounded[storeJob]) {
	defer stores.Close()

	for {
		job, err := jobs.Receive(ctx)
		if err != nil {
			w.logger.Debug("catch-up worker stopped", zap.Error(err))
			return
		}
		w.metrics.SetQueueDepth(catchUpQueueName, jobs.Len())

		if err := w.process(ctx, job, stores); err != nil {
			w.logger.Error("catch-up failed",
				zap.Stringer("job", job.id),
				zap.Uint64("from", job.from),
				zap.Uint64("to", job.to),
				zap.Error(err),
			)
		}
	}
}

func (w *catchUpWorker) process(ctx context.Context, job catchUpJob, stores *queue.Unbounded[storeJob]) (err error) {
	logger := w.logger.With(
		zap.Stringer("job", job.id),
		zap.Uint64("from", job.from),
		zap.Uint64("to", job.to),
	)
	if job.to <= job.from {
		logger.Warn("skipping empty catch-up range")
		return nil
	}

	started := time.Now()
	var forwarded uint64
	defer func() {
		w.metrics.ObserveCatchUp(err, forwarded, started)
	}()

	logger.Info("missing blocks", zap.Uint64("missing", job.to-job.from))

	ticker := w.newTicker()
	defer ticker.Stop()

	for height := job.from; height < job.to; height++ {
		if err = ticker.Tick(ctx); err != nil {
			return err
		}
		block, fetchErr := w.fetcher.Fetch(ctx, height, w.retries, ticker)
		if fetchErr != nil {
			err = fmt.Errorf("fetch block %d: %w", height, fetchErr)
			return err
		}
		if err = stores.Send(ctx, storeJob{block: block, height: height}); err != nil {
			err = fmt.Errorf("enqueue block %d: %w", height, err)
			return err
		}
		forwarded++
		w.metrics.SetQueueDepth(storeQueueName, stores.Len())
	}

	logger.Info("catch-up finished", zap.Uint64("forwarded", forwarded))
	err = ticker.Tick(ctx)
	return err
}
