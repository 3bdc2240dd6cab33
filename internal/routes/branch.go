package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
	"sales-system/pkg/middleware"
)

func runBranchRouter(secureGroup *echo.Group, ctrl *controllers.BranchController, authMW *middleware.AuthMiddleware) {
	staff := authMW.RequireRole(staffRoles...)

	secureGroup.GET("/branches", ctrl.GetBranches)
	secureGroup.GET("/branches/:id", ctrl.FindBranch)
	secureGroup.POST("/branches", ctrl.CreateBranch, staff)
	secureGroup.PUT("/branches/:id", ctrl.UpdateBranch, staff)
	secureGroup.DELETE("/branches/:id", ctrl.DeleteBranch, authMW.RequireRole(adminRoles...))
}
