package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runRepairRouter(api *echo.Group, ctrl *controllers.RepairController, authMW *middleware.AuthMiddleware) {
	repairs := api.Group("/repairs", authMW.Auth)

	repairs.POST("/request", ctrl.CreateRepair)
	repairs.POST("/approve/:id", ctrl.DecideRepair)
	repairs.POST("/complete/:id", ctrl.CompleteRepair)
	repairs.GET("/repair-history", ctrl.GetHistory)
}
