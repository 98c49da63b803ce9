package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runStatsRouter(api *echo.Group, ctrl *controllers.StatsController, authMW *middleware.AuthMiddleware) {
	admin := api.Group("/admin", authMW.Auth)

	admin.GET("/stats", ctrl.GetRepairStats)
}
