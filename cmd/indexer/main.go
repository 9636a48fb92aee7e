package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/metrics"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/node"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/repository/clickhouse"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/repository/postgres"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/service/explorer"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/service/indexer"
	"github.com/goodnatureofminers/soldag-backend/internal/supervisor"
	"github.com/goodnatureofminers/soldag-backend/internal/transport"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	storageClickhouse = "clickhouse"
	storagePostgres   = "postgres"
)

type config struct {
	RPCAPIKey      string `short:"k" long:"rpc-api-key" env:"RPC_API_KEY" description:"RPC api key, sent as the api-key query parameter"`
	RPCURL         string `short:"r" long:"rpc-url" env:"RPC_URL" description:"Solana RPC url" default:"https://mainnet.helius-rpc.com"`
	UpdateInterval uint64 `short:"u" long:"update-interval" env:"UPDATE_INTERVAL" description:"poll interval in milliseconds" default:"400"`
	APIListen      string `short:"a" long:"api-listen" env:"API_LISTEN" description:"REST listen address" default:"127.0.0.1:8081"`
	GRPCListen     string `long:"grpc-listen" env:"GRPC_LISTEN" description:"gRPC listen address" default:"127.0.0.1:9081"`
	Storage        string `long:"storage" env:"STORAGE" description:"transaction store" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	ClickhouseDSN  string `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"ClickHouse DSN" default:"clickhouse://default:@localhost:9000/default"`
	PostgresDSN    string `long:"postgres-dsn" env:"POSTGRES_DSN" description:"Postgres url; built from POSTGRES_USER, POSTGRES_PASSWORD, DB_ADDR and POSTGRES_DB when empty"`
	Restarts       int    `long:"restarts" env:"RESTARTS" description:"restart budget per task" default:"3"`
	LogLevel       string `long:"log-level" env:"LOG_LEVEL" description:"log level" default:"info"`
}

// transactionStore is implemented by both repository backends.
type transactionStore interface {
	indexer.TransactionRepository
	explorer.TransactionRepository
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	_ = godotenv.Load()

	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("indexer failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.UpdateInterval == 0 {
		return errors.New("update interval must be positive")
	}
	interval := time.Duration(cfg.UpdateInterval) * time.Millisecond

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()
	if err := store.Ping(ctx); err != nil {
		return err
	}

	rpcClient, err := node.NewRPCClient(cfg.RPCURL, cfg.RPCAPIKey, metrics.NewRPCClient())
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	solanaNode, err := node.NewNode(rpcClient)
	if err != nil {
		return err
	}
	if err := solanaNode.Health(ctx); err != nil {
		return fmt.Errorf("node health check: %w", err)
	}
	logger.Info("node is healthy", zap.String("rpc_url", cfg.RPCURL))

	indexerSvc, err := indexer.NewService(solanaNode, node.NewDecoder(), store, metrics.NewIndexer(), logger.Named("indexer"))
	if err != nil {
		return err
	}
	accounts, err := indexer.NewAccountReader(solanaNode)
	if err != nil {
		return err
	}
	explorerSvc, err := explorer.NewService(store)
	if err != nil {
		return err
	}
	handler, err := transport.NewRESTHandler(explorerSvc, accounts, metrics.NewHTTPServer(), logger.Named("rest"))
	if err != nil {
		return err
	}
	server, err := transport.NewServer(cfg.APIListen, cfg.GRPCListen, handler, logger.Named("api"))
	if err != nil {
		return err
	}

	sup, err := supervisor.New(metrics.NewSupervisor(), cfg.Restarts, logger.Named("supervisor"))
	if err != nil {
		return err
	}
	return sup.Run(ctx,
		supervisor.Task{Name: "indexer", Run: func(ctx context.Context) error {
			return indexerSvc.Run(ctx, interval)
		}},
		supervisor.Task{Name: "api", Run: server.Run},
	)
}

func newStore(ctx context.Context, cfg config) (transactionStore, error) {
	switch cfg.Storage {
	case storageClickhouse:
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		return repo, nil
	case storagePostgres:
		dsn := cfg.PostgresDSN
		if dsn == "" {
			var err error
			if dsn, err = postgres.URLFromEnv(); err != nil {
				return nil, err
			}
		}
		repo, err := postgres.NewRepository(ctx, dsn, metrics.NewPostgresRepository())
		if err != nil {
			return nil, fmt.Errorf("init postgres repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
}

