package kds

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dapurlink/warung-app/models"
)

// Event types
const (
	EventOrderCreate = "order_create"
	EventOrderUpdate = "order_update"
	EventStaffNotif  = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub menampung semua client dashboard dapur (chef, staff, admin).
// Client yang menerima event order cukup re-fetch feed order.
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient menambahkan connection ke set dengan role-nya.
func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

// UnregisterClient melepaskan connection; wajib dipanggil di setiap jalur
// keluar supaya koneksi tidak bocor.
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

// ClientCount mengembalikan jumlah client yang sedang terhubung.
func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

// BroadcastOrderCreate menyiarkan order baru ke semua client dapur.
func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreate,
		Data:  order,
	})
}

// BroadcastOrderUpdate menyiarkan perubahan order (biasanya status).
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastStaffNotification mengirim pesan teks untuk staff.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// broadcast mengirim satu pesan ke semua client. Dipanggil serial dari
// ChangeMonitor sehingga urutan event ke client mengikuti urutan perubahan.
func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range kdsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
