package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sales-system/migrations"
	"sales-system/pkg/config"
	applogger "sales-system/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "Команда goose: up, down, status, redo, version")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")
	defer logger.Sync()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(context.Background(), db, *command, logger); err != nil {
		log.Fatalf("Ошибка миграции: %v", err)
	}
}
