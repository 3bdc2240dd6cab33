package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

// Управление пользователями доступно только администраторам.
func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := secureGroup.Group("/users", authMW.RequireRole(adminRoles...))

	users.GET("", ctrl.GetUsers)
	users.GET("/:id", ctrl.FindUser)
	users.POST("", ctrl.CreateUser)
	users.PUT("/:id", ctrl.UpdateUser)
	users.DELETE("/:id", ctrl.DeleteUser)
}
