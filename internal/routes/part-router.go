package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runPartRouter(api *echo.Group, ctrl *controllers.PartController, authMW *middleware.AuthMiddleware) {
	parts := api.Group("/parts", authMW.Auth)

	parts.GET("", ctrl.GetParts)
	parts.GET("/:id", ctrl.FindPart)
	parts.POST("", ctrl.CreatePart)
	parts.PUT("/:id", ctrl.UpdatePart)
	parts.DELETE("/:id", ctrl.DeletePart)
}
