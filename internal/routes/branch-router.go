package routes

import (
	"repair-system/internal/controllers"
	"repair-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runBranchRouter(api *echo.Group, ctrl *controllers.BranchController, authMW *middleware.AuthMiddleware) {
	branches := api.Group("/branches", authMW.Auth)

	branches.GET("", ctrl.GetBranches)
	branches.POST("", ctrl.CreateBranch)
}
