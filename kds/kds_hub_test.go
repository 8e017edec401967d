package kds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/dapurlink/warung-app/models"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newHubServer menjalankan endpoint ws ala dashboard dapur: upgrade,
// register ke hub, tahan sampai client menutup koneksi.
func newHubServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		RegisterClient(conn, "chef")
		defer UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func waitForClients(t *testing.T, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, want, ClientCount())
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.NoError(t, err)

	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	srv := newHubServer()
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)

	waitForClients(t, 1)

	BroadcastOrderCreate(models.Order{
		ID:           7,
		CustomerName: "Budi",
		TableNumber:  "5",
		Status:       models.OrderStatusPending,
	})

	msg := readMessage(t, client)
	assert.Equal(t, EventOrderCreate, msg.Event)
	order := msg.Data.(map[string]interface{})
	assert.Equal(t, float64(7), order["id"])
	assert.Equal(t, models.OrderStatusPending, order["status"])

	BroadcastStaffNotification("Pesanan baru dari Budi")
	msg = readMessage(t, client)
	assert.Equal(t, EventStaffNotif, msg.Event)
	assert.Equal(t, "Pesanan baru dari Budi", msg.Data)

	// Client menutup koneksi -> handler meng-unregister
	client.Close()
	waitForClients(t, 0)
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	srv := newHubServer()
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer first.Close()
	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer second.Close()

	waitForClients(t, 2)

	BroadcastOrderUpdate(models.Order{ID: 3, Status: models.OrderStatusReady})

	for _, client := range []*websocket.Conn{first, second} {
		msg := readMessage(t, client)
		assert.Equal(t, EventOrderUpdate, msg.Event)
		assert.Equal(t, float64(3), msg.Data.(map[string]interface{})["id"])
	}
}
