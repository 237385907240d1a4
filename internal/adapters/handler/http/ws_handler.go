package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/quickpoll/api/internal/adapters/broadcast"
)

type WSHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *broadcast.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Serve upgrades the request and holds the connection open until the client
// goes away. Clients only receive broadcasts; inbound messages (keep-alive
// pings) are read and discarded.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read failed: %v", err)
			}
			return
		}
	}
}
