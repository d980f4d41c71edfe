package realtime

import (
	"sync"

	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// Hub owns the outbound side of every live connection: a buffered channel per
// connection that a transport write loop drains. Sends never block; a viewer
// that cannot keep up loses events rather than stalling the room.
type Hub struct {
	registry *RoomRegistry

	mu         sync.RWMutex
	conns      map[string]chan Message // key: connID
	sendBuffer int
}

// NewHub creates a Hub fanning out over the given registry's rooms
func NewHub(registry *RoomRegistry, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Hub{
		registry:   registry,
		conns:      make(map[string]chan Message),
		sendBuffer: sendBuffer,
	}
}

// Register creates the outbound channel for a connection
func (h *Hub) Register(connID string) <-chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, h.sendBuffer)
	h.conns[connID] = ch
	return ch
}

// Unregister removes a connection and closes its channel, ending the
// transport's write loop
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	close(ch)
	delete(h.conns, connID)
}

// EmitToConnection delivers an event to exactly one connection. Validation
// and conflict errors travel only this way, never via the room.
func (h *Hub) EmitToConnection(connID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	// the lock stays held across the send so Unregister cannot close the
	// channel in between; the default case keeps the hold bounded
	select {
	case ch <- msg:
	default:
		utils.Warn("realtime: dropped event, send buffer full", map[string]any{
			"conn_id": connID,
			"event":   string(msg.Type),
		})
	}
}

// EmitToRoom delivers an event to every connection currently in the room
func (h *Hub) EmitToRoom(auctionID string, msg Message) {
	for _, connID := range h.registry.Connections(auctionID) {
		h.EmitToConnection(connID, msg)
	}
}

// BidAccepted fans an accepted bid out to the auction's room. The bidding
// service invokes it inside the per-auction critical section, so viewers
// observe price updates in commit order.
func (h *Hub) BidAccepted(auction model.Auction, bid model.Bid) {
	h.EmitToRoom(auction.AuctionID, Message{
		Type: EventBidAccepted,
		Data: BidAcceptedPayload{
			Auction:    auction,
			BidderName: bid.BidderName,
			BidAmount:  bid.Amount,
		},
	})
	utils.Info("realtime: bid accepted", map[string]any{
		"auction_id": auction.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}
