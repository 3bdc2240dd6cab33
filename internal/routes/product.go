package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

func runProductRouter(secureGroup *echo.Group, ctrl *controllers.ProductController, authMW *middleware.AuthMiddleware) {
	staff := authMW.RequireRole(staffRoles...)

	secureGroup.GET("/products", ctrl.GetProducts)
	secureGroup.GET("/products/:id", ctrl.FindProduct)
	secureGroup.POST("/products", ctrl.CreateProduct, staff)
	secureGroup.PUT("/products/:id", ctrl.UpdateProduct, staff)
	secureGroup.DELETE("/products/:id", ctrl.DeleteProduct, staff)
}
