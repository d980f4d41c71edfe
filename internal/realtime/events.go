// Package realtime implements the live auction channel: room presence,
// the per-connection session protocol and event fan-out to viewers.
package realtime

import (
	"encoding/json"

	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// EventKind names one message type on the realtime channel
type EventKind string

// Client to server events
const (
	EventJoinAuction  EventKind = "join_auction"
	EventLeaveAuction EventKind = "leave_auction"
	EventPlaceBid     EventKind = "place_bid"
)

// Server to client events
const (
	EventPresenceChanged EventKind = "presence_changed"
	EventBidAccepted     EventKind = "bid_accepted"
	EventError           EventKind = "error"
)

// Envelope is the wire frame for inbound client events
type Envelope struct {
	Type EventKind       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message is one outbound event queued for a connection
type Message struct {
	Type EventKind `json:"type"`
	Data any       `json:"data"`
}

// JoinPayload accompanies join_auction and leave_auction
type JoinPayload struct {
	AuctionID string `json:"auction_id"`
}

// BidPayload accompanies place_bid
type BidPayload struct {
	AuctionID string  `json:"auction_id"`
	Amount    float64 `json:"amount"`
}

// PresencePayload is broadcast to a room on any join, leave or disconnect
type PresencePayload struct {
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name"`
	ActiveUsers []model.Viewer `json:"active_users"`
}

// BidAcceptedPayload is broadcast to a room on a committed bid
type BidAcceptedPayload struct {
	Auction    model.Auction `json:"auction"`
	BidderName string        `json:"bidder_name"`
	BidAmount  float64       `json:"bid_amount"`
}

// ErrorPayload is delivered only to the connection that caused it
type ErrorPayload struct {
	Message string `json:"message"`
}
