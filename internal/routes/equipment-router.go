package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(api *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	equipments := api.Group("/equipments", authMW.Auth)

	equipments.GET("", ctrl.GetEquipments)
	equipments.GET("/:id", ctrl.FindEquipment)
	equipments.POST("", ctrl.CreateEquipment)
	equipments.DELETE("/:id", ctrl.DeleteEquipment)
}
