package server

import (
	"log"

	"chronicle/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws — the live feed stream. The feed is
// broadcast-only: clients receive post/comment/engagement events and send
// nothing but control frames.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		observability.WebSocketConnectionsTotal.Inc()
		defer observability.WebSocketConnectionsTotal.Dec()

		// Set by AuthRequired; zero when the identity has no local user yet.
		userID, _ := conn.Locals("userID").(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"feed unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket feed: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
