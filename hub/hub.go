// Package hub fans full-state snapshots out to connected browsers over
// websockets whenever a synchronizer rebuilds.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/utils"
)

// Event types
const (
	EventMenuUpdate     = "menu_update"
	EventOrdersUpdate   = "orders_update"
	EventSettingsUpdate = "settings_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client. Admin clients additionally receive order
// snapshots.
type Hub struct {
	clients map[*websocket.Conn]bool // conn -> is admin
	mutex   sync.Mutex
}

var liveHub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a connection to the set.
func RegisterClient(conn *websocket.Conn, admin bool) {
	liveHub.mutex.Lock()
	defer liveHub.mutex.Unlock()
	liveHub.clients[conn] = admin
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	liveHub.mutex.Lock()
	defer liveHub.mutex.Unlock()
	delete(liveHub.clients, conn)
	conn.Close()
}

// BroadcastMenuUpdate pushes the sorted menu to every client.
func BroadcastMenuUpdate(items []models.MenuItem) {
	broadcast(Message{Event: EventMenuUpdate, Data: items}, false)
}

// BroadcastOrdersUpdate pushes the order list to admin clients only.
func BroadcastOrdersUpdate(orders []models.Order) {
	broadcast(Message{Event: EventOrdersUpdate, Data: orders}, true)
}

// BroadcastSettingsUpdate pushes the settings map to every client.
func BroadcastSettingsUpdate(values map[string]string) {
	broadcast(Message{Event: EventSettingsUpdate, Data: values}, false)
}

func broadcast(msg Message, adminOnly bool) {
	liveHub.mutex.Lock()
	defer liveHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("error marshaling %s message: %v", msg.Event, err)
		return
	}

	for conn, admin := range liveHub.clients {
		if adminOnly && !admin {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("error sending %s to client: %v", msg.Event, err)
		}
	}
}
