package controllers

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-system/internal/entities"
	"sales-system/pkg/api"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/service"
	appwebsocket "sales-system/pkg/websocket"
)

// WebSocketController подключает менеджеров к живой ленте событий продаж.
type WebSocketController struct {
	hub        *appwebsocket.Hub
	jwtService service.JWTService
	upgrader   *websocket.Upgrader
	logger     *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
		upgrader:   appwebsocket.NewUpgrader(allowedOrigins),
		logger:     logger,
	}
}

// ServeSalesFeed ждёт access-токен в query-параметре token: браузер не умеет ставить заголовки на WebSocket.
func (c *WebSocketController) ServeSalesFeed(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return api.ErrorResponse(ctx, apperrors.ErrEmptyAuthHeader, c.logger)
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return api.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}
	if claims.Role != string(entities.UserRoleManager) && claims.Role != string(entities.UserRoleAdmin) {
		return api.ErrorResponse(ctx, apperrors.ErrForbidden, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.UserID)
	if !c.hub.Register(client) {
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: клиент подключен к ленте продаж", zap.String("userID", claims.UserID.String()))
	return nil
}
