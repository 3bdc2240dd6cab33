package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/pkg/service"
	appwebsocket "sales-system/pkg/websocket"
)

func newFeedServer(t *testing.T) (*httptest.Server, *appwebsocket.Hub, service.JWTService) {
	t.Helper()
	hub := appwebsocket.NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	jwtSvc := service.NewJWTService("feed-secret", time.Minute, time.Hour, zap.NewNop())
	ctrl := NewWebSocketController(hub, jwtSvc, nil, zap.NewNop())

	e := echo.New()
	e.GET("/ws/sales", ctrl.ServeSalesFeed)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, hub, jwtSvc
}

func TestWebSocketController_RejectsBadTokens(t *testing.T) {
	srv, _, jwtSvc := newFeedServer(t)

	access, refresh, err := jwtSvc.GenerateTokens(uuid.New(), "Customer")
	require.NoError(t, err)

	cases := map[string]int{
		"":                  http.StatusUnauthorized,
		"?token=broken":     http.StatusUnauthorized,
		"?token=" + refresh: http.StatusUnauthorized,
		"?token=" + access:  http.StatusForbidden,
	}
	for query, want := range cases {
		res, err := http.Get(srv.URL + "/ws/sales" + query)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, want, res.StatusCode, query)
	}
}

func TestWebSocketController_DeliversBroadcasts(t *testing.T) {
	srv, hub, jwtSvc := newFeedServer(t)

	access, _, err := jwtSvc.GenerateTokens(uuid.New(), "Manager")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sales?token=" + access
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Broadcast("sale.created", map[string]string{"sale_number": "S-42"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope appwebsocket.Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "sale.created", envelope.Type)
	assert.Equal(t, map[string]interface{}{"sale_number": "S-42"}, envelope.Payload)
}
