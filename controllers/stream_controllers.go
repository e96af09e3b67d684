package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kmuchiri/jikoni-orders/hub"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler attaches a browser to the live-update hub. Customers receive
// menu and settings snapshots; a valid admin token adds order snapshots.
func StreamHandler(c *gin.Context) {
	admin := c.GetBool("admin")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	hub.RegisterClient(ws, admin)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
}
