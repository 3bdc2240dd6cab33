package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/reports/sales", ctrl.GetSalesReport, authMW.RequireRole(staffRoles...))
}
