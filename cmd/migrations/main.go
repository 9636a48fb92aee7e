package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/repository/postgres"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type config struct {
	Driver        string `long:"driver" env:"MIGRATIONS_DRIVER" description:"database driver" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	DSN           string `long:"dsn" env:"MIGRATIONS_DSN" description:"database url (clickhouse://... or postgres://...); postgres falls back to POSTGRES_* variables"`
	MigrationsDir string `long:"path" env:"MIGRATIONS_DIR" description:"path to migration files, defaults to migrations/<driver>"`
	Down          bool   `long:"down" description:"roll back every migration instead of applying them"`
}

func main() {
	_ = godotenv.Load()

	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := runMigrations(ctx, cfg, logger); err != nil {
		logger.Fatal("migration run failed", zap.Error(err))
	}
}

func runMigrations(ctx context.Context, cfg config, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	databaseURL, err := databaseURL(cfg)
	if err != nil {
		return err
	}

	dirName := cfg.MigrationsDir
	if dirName == "" {
		dirName = filepath.Join("migrations", cfg.Driver)
	}
	dir, err := filepath.Abs(dirName)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(dir))
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("migration source close error", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Warn("migration database close error", zap.Error(dbErr))
		}
	}()

	apply, direction := m.Up, "up"
	if cfg.Down {
		apply, direction = m.Down, "down"
	}
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to apply", zap.String("direction", direction))
			return nil
		}
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	logger.Info("migrations applied successfully", zap.String("driver", cfg.Driver), zap.String("direction", direction))
	return nil
}

// databaseURL returns the migrate url for the driver; postgres urls use the pgx/v5 scheme.
func databaseURL(cfg config) (string, error) {
	switch cfg.Driver {
	case "clickhouse":
		if cfg.DSN == "" {
			return "", errors.New("clickhouse dsn is required")
		}
		return withMultiStatement(cfg.DSN), nil
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			var err error
			if dsn, err = postgres.URLFromEnv(); err != nil {
				return "", err
			}
		}
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(dsn, prefix) {
				return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
			}
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func withMultiStatement(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}
