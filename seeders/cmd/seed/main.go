package main

import (
	"context"
	"flag"
	"log"

	"sales-system/pkg/config"
	"sales-system/pkg/database/postgresql"
	applogger "sales-system/pkg/logger"
	"sales-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать администратора")
	runBranch := flag.Bool("branch", false, "Создать головной филиал")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -branch)")
	adminEmail := flag.String("admin-email", "admin@sales.local", "Email администратора")
	adminPassword := flag.String("admin-password", "Admin@12345", "Пароль администратора")
	flag.Parse()

	if !*runAdmin && !*runBranch && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin -admin-email=boss@example.com")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")
	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runBranch {
		if err := seeders.SeedDefaultBranch(ctx, dbPool); err != nil {
			log.Fatalf("Ошибка сидера филиалов: %v", err)
		}
	}

	if *runAll || *runAdmin {
		admin := seeders.AdminSeed{Username: "admin", Email: *adminEmail, Password: *adminPassword}
		if err := seeders.SeedAdmin(ctx, dbPool, admin); err != nil {
			log.Fatalf("Ошибка сидера администратора: %v", err)
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
