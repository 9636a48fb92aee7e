// Package supervisor keeps long-running tasks alive with a bounded number of restarts.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRestartDelay = time.Second

// ErrRestartsExhausted is returned when a task stopped more often than its restart budget allows.
var ErrRestartsExhausted = errors.New("restart budget exhausted")

// Task is a named unit of work. Run should block until ctx is done or the task fails.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Supervisor struct {
	logger   *zap.Logger
	metrics  Metrics
	restarts int
	delay    time.Duration
	sleep    func(context.Context, time.Duration) error
}

// New builds a Supervisor that restarts every task at most restarts times.
func New(metrics Metrics, restarts int, logger *zap.Logger) (*Supervisor, error) {
	if metrics == nil {
		return nil, errors.New("supervisor metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if restarts < 0 {
		return nil, fmt.Errorf("invalid restart budget %d", restarts)
	}
	return &Supervisor{
		logger:   logger,
		metrics:  metrics,
		restarts: restarts,
		delay:    defaultRestartDelay,
		sleep:    clock.SleepWithContext,
	}, nil
}

// Run supervises tasks until ctx is done, returning nil, or until one task exhausts its
// budget, which stops the others and returns ErrRestartsExhausted.
func (s *Supervisor) Run(ctx context.Context, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			return s.supervise(gctx, task)
		})
	}

	err := g.Wait()
	if ctx.Err() != nil {
		s.logger.Info("supervisor stopped")
		return nil
	}
	return err
}

func (s *Supervisor) supervise(ctx context.Context, task Task) error {
	logger := s.logger.With(zap.String("task", task.Name))

	for restarts := 0; ; restarts++ {
		logger.Info("starting task", zap.Int("restarts", restarts))
		err := runTask(ctx, task)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.Error("task failed", zap.Error(err))
		} else {
			logger.Warn("task exited")
		}

		if restarts >= s.restarts {
			return fmt.Errorf("%w: task %s after %d restarts: %v", ErrRestartsExhausted, task.Name, restarts, err)
		}
		s.metrics.ObserveRestart(task.Name)
		if err := s.sleep(ctx, s.delay); err != nil {
			return nil
		}
	}
}

func runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	return task.Run(ctx)
}
