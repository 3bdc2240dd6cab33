package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

func runCustomerRouter(secureGroup *echo.Group, ctrl *controllers.CustomerController, authMW *middleware.AuthMiddleware) {
	customers := secureGroup.Group("/customers", authMW.RequireRole(staffRoles...))

	customers.GET("", ctrl.GetCustomers)
	customers.GET("/:id", ctrl.FindCustomer)
	customers.POST("", ctrl.CreateCustomer)
	customers.PUT("/:id", ctrl.UpdateCustomer)
	customers.DELETE("/:id", ctrl.DeleteCustomer)
}
