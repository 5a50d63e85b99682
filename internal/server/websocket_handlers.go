// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"
	"log"
	"strconv"

	"vireo/internal/cache"
	"vireo/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// IssueWSTicket handles POST /api/ws/ticket. Browsers cannot set an
// Authorization header on a WebSocket upgrade, so an authenticated client
// trades its JWT for a short-lived single-use ticket passed as a query param.
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(errors.New("ticket store unavailable")))
	}

	ticket := uuid.New().String()
	err := s.redis.Set(c.Context(), cache.WSTicketKey(ticket),
		strconv.FormatUint(uint64(userID), 10), cache.WSTicketTTL).Err()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(cache.WSTicketTTL.Seconds()),
	})
}

// FeedWebsocketHandler handles GET /api/ws/feed. AuthRequired has already run
// on the upgrade request; an unauthenticated connection never reaches the hub.
// Each accepted connection holds exactly one hub registration, released when
// the connection closes.
func (s *Server) FeedWebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.Close()
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Feed: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// The handshake is done; the single-use ticket is spent for good.
		s.consumeWSTicket(nil, conn.Locals("wsTicket"))

		defer s.hub.UnregisterClient(client)

		// Start pumps; ReadPump blocks until the connection closes and
		// unregisters the client on exit.
		go client.WritePump()
		client.ReadPump()
	})
}
