package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sales-system/internal/listeners"
	"sales-system/internal/routes"
	"sales-system/migrations"
	"sales-system/pkg/api"
	"sales-system/pkg/config"
	"sales-system/pkg/database/postgresql"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/eventbus"
	applogger "sales-system/pkg/logger"
	"sales-system/pkg/middleware"
	"sales-system/pkg/service"
	"sales-system/pkg/validation"
	appwebsocket "sales-system/pkg/websocket"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.FilePath)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = api.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.RequestLogger(logger))

	e.Validator = validation.New()

	// 3. Postgres и миграции
	ctx := context.Background()
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := migrations.Up(ctx, dbConn, logger); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
	}

	// 4. Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 5. Сервисы и роуты
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	bus := eventbus.New(logger.Named("eventbus"))
	listeners.NewSaleListener(logger.Named("sale-events")).Register(bus)

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := appwebsocket.NewHub(logger.Named("websocket"))
	go hub.Run(hubCtx)
	listeners.NewSaleFeedListener(hub, logger.Named("sale-feed")).Register(bus)

	loggers := &routes.Loggers{
		Main: logger,
		Auth: logger.Named("auth"),
		Sale: logger.Named("sale"),
		User: logger.Named("user"),
	}
	routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, hub, loggers, cfg)

	// 6. Запуск и корректная остановка
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("🚀 Сервер запущен", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	bus.Wait()
	stopHub()
	logger.Info("Сервер остановлен")
}
