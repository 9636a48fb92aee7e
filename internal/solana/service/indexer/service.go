// Package indexer follows the chain head, backfills gaps and persists decoded transactions.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/clock"
	"github.com/goodnatureofminers/soldag-backend/pkg/queue"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the polling side of the pipeline. Each Run owns a fresh session:
// its own queues, workers and previous height.
type Service struct {
	logger           *zap.Logger
	node             Node
	fetcher          BlockFetcher
	decoder          TransactionDecoder
	repo             TransactionRepository
	metrics          Metrics
	newTicker        func(time.Duration) clock.Ticker
	newCatchUpTicker func() clock.Ticker
}

// NewService builds a Service with dependencies.
func NewService(
	node Node,
	decoder TransactionDecoder,
	repo TransactionRepository,
	metrics Metrics,
	logger *zap.Logger,
) (*Service, error) {
	if node == nil {
		return nil, errors.New("indexer node is required")
	}
	if decoder == nil {
		return nil, errors.New("indexer decoder is required")
	}
	if repo == nil {
		return nil, errors.New("indexer repository is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:  logger,
		node:    node,
		fetcher: &blockFetcher{node: node},
		decoder: decoder,
		repo:    repo,
		metrics: metrics,
		newTicker: func(d time.Duration) clock.Ticker {
			return clock.NewInterval(d)
		},
		newCatchUpTicker: func() clock.Ticker {
			return clock.NewLimiter(catchUpInterval)
		},
	}, nil
}

// Run polls the node every interval until an error occurs or ctx is done.
// Workers started by Run drain their queues after it returns.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", interval)
	}
	s.logger.Info("starting indexer", zap.Duration("interval", interval))

	stores := queue.New[storeJob](ctx)
	catchUps := queue.New[catchUpJob](ctx)
	defer catchUps.Close()

	sink := &storeSink{
		logger:  s.logger.Named("storeSink"),
		decoder: s.decoder,
		repo:    s.repo,
		metrics: s.metrics,
	}
	worker := &catchUpWorker{
		logger:    s.logger.Named("catchUpWorker"),
		fetcher:   s.fetcher,
		metrics:   s.metrics,
		retries:   catchUpRetries,
		newTicker: s.newCatchUpTicker,
	}
	go sink.run(ctx, stores)
	go worker.run(ctx, catchUps, stores)

	ticker := s.newTicker(interval)
	defer ticker.Stop()

	var previous uint64
	for {
		if err := ticker.Tick(ctx); err != nil {
			return err
		}
		if err := s.poll(ctx, &previous, ticker, catchUps, stores); err != nil {
			return err
		}
	}
}

// poll runs one tick: read the head, request a backfill on a gap, then fetch and enqueue the head block.
func (s *Service) poll(
	ctx context.Context,
	previous *uint64,
	ticker clock.Ticker,
	catchUps *queue.Unbounded[catchUpJob],
	stores *queue.Unbounded[storeJob],
) error {
	started := time.Now()
	current, err := s.node.CurrentHeight(ctx)
	s.metrics.ObservePoll(err, current, started)
	if err != nil {
		return fmt.Errorf("get current height: %w", err)
	}
	s.logger.Debug("latest height", zap.Uint64("height", current))

	if isGap(*previous, current) {
		s.metrics.ObserveGap(*previous, current)
		job := catchUpJob{id: uuid.New(), from: *previous, to: current}
		if err := catchUps.Send(ctx, job); err != nil {
			return fmt.Errorf("enqueue catch-up %d..%d: %w", job.from, job.to, err)
		}
		s.metrics.SetQueueDepth(catchUpQueueName, catchUps.Len())
	}
	*previous = current

	block, err := s.fetcher.Fetch(ctx, current, liveRetries, ticker)
	if err != nil {
		return fmt.Errorf("fetch block %d: %w", current, err)
	}
	if err := stores.Send(ctx, storeJob{block: block, height: current}); err != nil {
		return fmt.Errorf("enqueue block %d: %w", current, err)
	}
	s.metrics.SetQueueDepth(storeQueueName, stores.Len())
	return nil
}

// isGap reports whether current does not directly follow previous. An unset previous height never gaps.
func isGap(previous, current uint64) bool {
	return previous != 0 && current != previous+1
}
