package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, ctrl *controllers.AuthController) {
	auth := public.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh", ctrl.Refresh)

	secure.GET("/auth/me", ctrl.Me)
}
