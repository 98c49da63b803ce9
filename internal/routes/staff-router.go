package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runStaffRouter(api *echo.Group, ctrl *controllers.StaffController, authMW *middleware.AuthMiddleware) {
	staff := api.Group("/staff", authMW.Auth)

	staff.GET("", ctrl.GetStaffList)
}
