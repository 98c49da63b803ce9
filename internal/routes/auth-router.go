package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")

	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh-token", ctrl.RefreshTokens)
	auth.POST("/register", ctrl.Register, authMW.Auth)
	auth.GET("/me", ctrl.Me, authMW.Auth)

	auth.POST("/reset-password/request", ctrl.RequestPasswordReset)
	auth.POST("/reset-password/verify", ctrl.VerifyResetCode)
	auth.POST("/reset-password/confirm", ctrl.ResetPassword)
}
