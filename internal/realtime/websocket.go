package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// WSHandler upgrades authenticated HTTP requests to websocket sessions
type WSHandler struct {
	verifier *auth.Verifier
	hub      *Hub
	registry *RoomRegistry
	bids     BidPlacer

	pingInterval time.Duration
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewWSHandler creates the websocket entry point for the realtime channel
func NewWSHandler(verifier *auth.Verifier, hub *Hub, registry *RoomRegistry, bids BidPlacer, pingInterval, writeTimeout time.Duration) *WSHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &WSHandler{
		verifier:     verifier,
		hub:          hub,
		registry:     registry,
		bids:         bids,
		pingInterval: pingInterval,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin is not checked; the signed token verified before the
			// upgrade is the gate for the handshake
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle authenticates, upgrades and runs one connection until it drops.
// The identity is verified once here; every later frame acts as this user.
func (h *WSHandler) Handle(c *gin.Context) {
	identity, err := h.verifier.Verify(auth.TokenFromRequest(c.Request))
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, auth.ErrInvalidToken, "invalid credentials")
		utils.Warn("realtime: handshake rejected", map[string]any{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		utils.Warn("realtime: upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	session := NewSession(identity, h.hub, h.registry, h.bids)
	out := h.hub.Register(session.ConnID())

	utils.Info("realtime: connection opened", map[string]any{
		"conn_id": session.ConnID(),
		"user_id": identity.UserID,
	})

	go h.writePump(conn, out)
	h.readPump(conn, session)

	session.HandleDisconnect()
	h.hub.Unregister(session.ConnID())

	utils.Info("realtime: connection closed", map[string]any{
		"conn_id": session.ConnID(),
		"user_id": identity.UserID,
	})
}

// readPump decodes inbound frames and drives the session until the transport
// errors out
func (h *WSHandler) readPump(conn *websocket.Conn, session *Session) {
	defer conn.Close()

	readDeadline := h.pingInterval + h.writeTimeout
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("realtime: read error", map[string]any{
					"conn_id": session.ConnID(),
					"error":   err.Error(),
				})
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			session.emitError("malformed event")
			continue
		}
		session.HandleMessage(env)
	}
}

// writePump drains the connection's hub channel and keeps the transport alive
// with pings. It exits when the hub closes the channel on unregister or when
// a write fails.
func (h *WSHandler) writePump(conn *websocket.Conn, out <-chan Message) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
