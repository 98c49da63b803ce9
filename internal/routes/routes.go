package routes

import (
	"repair-system/internal/controllers"
	"repair-system/internal/repositories"
	"repair-system/internal/services"
	"repair-system/pkg/config"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter собирает слои приложения и регистрирует все маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	branchRepo := repositories.NewBranchRepository(dbConn)
	staffRepo := repositories.NewStaffRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	partRepo := repositories.NewPartRepository(dbConn)
	repairRepo := repositories.NewRepairRepository(dbConn)
	repairPartRepo := repositories.NewRepairPartRepository(dbConn)
	statsRepo := repositories.NewStatsRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	staffService := services.NewStaffService(staffRepo)
	authService := services.NewAuthService(staffRepo, cacheRepo, jwtSvc, cfg.Auth, logger)
	branchService := services.NewBranchService(branchRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, branchRepo, logger)
	partService := services.NewPartService(partRepo, logger)
	txManager := repositories.NewTxManager(dbConn)
	repairService := services.NewRepairService(txManager, repairRepo, repairPartRepo, partRepo, staffRepo, equipmentRepo, logger)
	statsService := services.NewStatsService(statsRepo, logger)

	authController := controllers.NewAuthController(authService, staffService, logger)
	branchController := controllers.NewBranchController(branchService, staffService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, staffService, logger)
	partController := controllers.NewPartController(partService, staffService, logger)
	repairController := controllers.NewRepairController(repairService, staffService, logger)
	statsController := controllers.NewStatsController(statsService, staffService, logger)
	staffController := controllers.NewStaffController(staffService, logger)

	runAuthRouter(api, authController, authMW)
	runBranchRouter(api, branchController, authMW)
	runEquipmentRouter(api, equipmentController, authMW)
	runPartRouter(api, partController, authMW)
	runRepairRouter(api, repairController, authMW)
	runStatsRouter(api, statsController, authMW)
	runStaffRouter(api, staffController, authMW)
}
