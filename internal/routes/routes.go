package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-system/internal/controllers"
	"sales-system/internal/repositories"
	"sales-system/internal/services"
	"sales-system/pkg/config"
	"sales-system/pkg/eventbus"
	"sales-system/pkg/middleware"
	"sales-system/pkg/service"
	appwebsocket "sales-system/pkg/websocket"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	Sale *zap.Logger
	User *zap.Logger
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	hub *appwebsocket.Hub,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 1. РЕПОЗИТОРИИ ---
	branchRepo := repositories.NewBranchRepository(dbConn, loggers.Main)
	customerRepo := repositories.NewCustomerRepository(dbConn, loggers.Main)
	productRepo := repositories.NewProductRepository(dbConn, loggers.Main)
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	saleRepo := repositories.NewSaleRepository(dbConn, loggers.Sale)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, cfg.Auth)
	branchService := services.NewBranchService(branchRepo, loggers.Main)
	customerService := services.NewCustomerService(customerRepo, loggers.Main)
	productService := services.NewProductService(productRepo, cacheRepo, cfg.Cache.ProductTTL, loggers.Main)
	userService := services.NewUserService(userRepo, loggers.User)
	saleService := services.NewSaleService(saleRepo, customerRepo, branchRepo, productRepo, txManager, bus, loggers.Sale)
	reportService := services.NewReportService(saleRepo, loggers.Sale)

	// --- 3. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, controllers.NewAuthController(authService, loggers.Auth))
	runBranchRouter(secureGroup, controllers.NewBranchController(branchService, loggers.Main), authMW)
	runCustomerRouter(secureGroup, controllers.NewCustomerController(customerService, loggers.Main), authMW)
	runProductRouter(secureGroup, controllers.NewProductController(productService, loggers.Main), authMW)
	runUserRouter(secureGroup, controllers.NewUserController(userService, loggers.User), authMW)
	runSaleRouter(secureGroup, controllers.NewSaleController(saleService, loggers.Sale), authMW)
	runReportRouter(secureGroup, controllers.NewReportController(reportService, loggers.Sale), authMW)
	runWebSocketRouter(api, controllers.NewWebSocketController(hub, jwtSvc, cfg.Server.AllowedOrigins, loggers.Sale))

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
