package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

const migrationsDir = "sql"

// Up применяет все непримененные миграции через тот же пул, что и приложение.
func Up(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return run(ctx, db, "up", logger)
}

// Run выполняет произвольную команду goose (up, down, status, redo, version).
func Run(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	return run(ctx, db, command, logger)
}

func run(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(zapGooseLogger{logger.Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: не удалось выбрать диалект: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	logger.Info("Миграции выполнены", zap.String("command", command))
	return nil
}

// zapGooseLogger адаптирует zap к goose.Logger.
type zapGooseLogger struct {
	s *zap.SugaredLogger
}

func (l zapGooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }
func (l zapGooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }
