package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

func runSaleRouter(secureGroup *echo.Group, ctrl *controllers.SaleController, authMW *middleware.AuthMiddleware) {
	staff := authMW.RequireRole(staffRoles...)

	secureGroup.GET("/sales", ctrl.GetSales, staff)
	secureGroup.GET("/sales/:id", ctrl.FindSale, staff)
	secureGroup.POST("/sales", ctrl.CreateSale, staff)
	secureGroup.PUT("/sales/:id", ctrl.UpdateSale, staff)
	secureGroup.POST("/sales/:id/cancel", ctrl.CancelSale, staff)
	secureGroup.POST("/sales/:id/items/:itemId/cancel", ctrl.CancelSaleItem, staff)
	secureGroup.DELETE("/sales/:id", ctrl.DeleteSale, authMW.RequireRole(adminRoles...))
}
