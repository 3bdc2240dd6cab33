package routes

import (
	"github.com/labstack/echo/v4"

	"sales-system/internal/controllers"
)

// Лента проверяет токен сама, поэтому маршрут висит вне secureGroup.
func runWebSocketRouter(api *echo.Group, ctrl *controllers.WebSocketController) {
	api.GET("/ws/sales", ctrl.ServeSalesFeed)
}
