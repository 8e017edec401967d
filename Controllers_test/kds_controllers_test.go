package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/dapurlink/warung-app/controllers"
	"github.com/dapurlink/warung-app/kds"
	"github.com/dapurlink/warung-app/middlewares"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

func setupKDSServer() *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/kitchen/ws", middlewares.WebSocketAuthMiddleware(), controllers.KDSHandler)
	return httptest.NewServer(r)
}

func waitForHubClients(t *testing.T, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for kds.ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, want, kds.ClientCount())
}

func TestKDSWebSocketAuth(t *testing.T) {
	utils.InitLogger()
	srv := setupKDSServer()
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/kitchen/ws"

	// Tanpa token: handshake ditolak sebelum upgrade
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// Token yang bukan JWT valid
	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token=bukan-jwt", nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// Role di luar dapur ditolak setelah auth
	customerToken, err := utils.GenerateToken(9, "customer")
	assert.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token="+customerToken, nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
	assert.Equal(t, 0, kds.ClientCount())
}

func TestKDSWebSocketSubscribeLifecycle(t *testing.T) {
	utils.InitLogger()
	srv := setupKDSServer()
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/kitchen/ws"

	token, err := utils.GenerateToken(1, "chef")
	assert.NoError(t, err)
	client, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	assert.NoError(t, err)

	waitForHubClients(t, 1)

	// Client yang terdaftar menerima event order
	kds.BroadcastOrderUpdate(models.Order{ID: 11, Status: models.OrderStatusReady})
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := client.ReadMessage()
	assert.NoError(t, err)
	assert.Contains(t, string(raw), kds.EventOrderUpdate)

	// Tutup koneksi -> handler melepas client dari hub
	client.Close()
	waitForHubClients(t, 0)
}
