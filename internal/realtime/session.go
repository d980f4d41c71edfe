package realtime

import (
	"encoding/json"
	"errors"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/bidding"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// BidPlacer is the slice of the bidding service the session needs
type BidPlacer interface {
	PlaceBid(auctionID string, bidder model.Identity, amount float64) (model.Auction, model.Bid, error)
}

// Session is the per-connection protocol state machine. The identity is bound
// at handshake time and immutable for the connection's lifetime; payload
// fields never influence who the session acts as.
//
// A session is driven by a single transport read loop, so its state needs no
// locking of its own.
type Session struct {
	connID   string
	identity model.Identity
	hub      *Hub
	registry *RoomRegistry
	bids     BidPlacer

	room string // auction id currently joined, empty when none
}

// NewSession creates a session for one authenticated connection
func NewSession(identity model.Identity, hub *Hub, registry *RoomRegistry, bids BidPlacer) *Session {
	return &Session{
		connID:   utils.GenerateID(),
		identity: identity,
		hub:      hub,
		registry: registry,
		bids:     bids,
	}
}

// ConnID returns the connection id the hub knows this session by
func (s *Session) ConnID() string {
	return s.connID
}

// Room returns the auction id the session is joined to, empty when none
func (s *Session) Room() string {
	return s.room
}

// HandleMessage decodes one inbound frame and applies the matching transition
func (s *Session) HandleMessage(env Envelope) {
	switch env.Type {
	case EventJoinAuction:
		var p JoinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.AuctionID == "" {
			s.emitError("join requires an auction_id")
			return
		}
		s.HandleJoin(p.AuctionID)
	case EventLeaveAuction:
		var p JoinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.AuctionID == "" {
			s.emitError("leave requires an auction_id")
			return
		}
		s.HandleLeave(p.AuctionID)
	case EventPlaceBid:
		var p BidPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.AuctionID == "" {
			s.emitError("bid requires an auction_id and amount")
			return
		}
		s.HandleBid(p.AuctionID, p.Amount)
	default:
		s.emitError("unknown event type")
	}
}

// HandleJoin moves the session into an auction room, implicitly leaving any
// room it was in, and broadcasts the updated presence.
func (s *Session) HandleJoin(auctionID string) {
	if s.room == auctionID {
		return
	}
	if s.room != "" {
		s.HandleLeave(s.room)
	}

	active := s.registry.Join(auctionID, s.connID, model.Viewer{
		UserID:   s.identity.UserID,
		UserName: s.identity.UserName,
	})
	s.room = auctionID

	s.hub.EmitToRoom(auctionID, Message{
		Type: EventPresenceChanged,
		Data: PresencePayload{
			UserID:      s.identity.UserID,
			UserName:    s.identity.UserName,
			ActiveUsers: active,
		},
	})
	utils.Info("realtime: joined room", map[string]any{
		"auction_id": auctionID,
		"user_id":    s.identity.UserID,
	})
}

// HandleLeave removes the session from a room and broadcasts the updated
// presence to whoever remains
func (s *Session) HandleLeave(auctionID string) {
	if s.room != auctionID {
		return
	}

	s.registry.Leave(auctionID, s.connID)
	s.room = ""

	s.hub.EmitToRoom(auctionID, Message{
		Type: EventPresenceChanged,
		Data: PresencePayload{
			UserID:      s.identity.UserID,
			UserName:    s.identity.UserName,
			ActiveUsers: s.registry.ActiveUsers(auctionID),
		},
	})
}

// HandleBid submits a bid over the session's joined room. Rejections and
// conflicts go back to this connection only; an accepted bid reaches the
// room through the bidding service's notifier.
func (s *Session) HandleBid(auctionID string, amount float64) {
	if s.room != auctionID {
		s.emitError("join the auction before bidding")
		return
	}

	if _, _, err := s.bids.PlaceBid(auctionID, s.identity, amount); err != nil {
		s.emitError(clientMessage(err))
		utils.Warn("realtime: bid not accepted", map[string]any{
			"auction_id": auctionID,
			"user_id":    s.identity.UserID,
			"amount":     amount,
			"error":      err.Error(),
		})
	}
}

// HandleDisconnect cleans up presence after the transport drops, broadcasting
// to any room the connection was still in
func (s *Session) HandleDisconnect() {
	affected := s.registry.CleanupConnection(s.connID)
	s.room = ""

	for _, auctionID := range affected {
		s.hub.EmitToRoom(auctionID, Message{
			Type: EventPresenceChanged,
			Data: PresencePayload{
				UserID:      s.identity.UserID,
				UserName:    s.identity.UserName,
				ActiveUsers: s.registry.ActiveUsers(auctionID),
			},
		})
	}
}

func (s *Session) emitError(message string) {
	s.hub.EmitToConnection(s.connID, Message{
		Type: EventError,
		Data: ErrorPayload{Message: message},
	})
}

// clientMessage maps a bid failure to the message shown to the submitter.
// Bound messages surface the computed limit from the validator.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrPriceConflict):
		return "price changed, re-fetch and retry"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return "auction not found"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return "auction ended"
	case errors.Is(err, auctionerrors.ErrSellerBid):
		return "seller cannot bid on own auction"
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return "invalid amount"
	case errors.Is(err, auctionerrors.ErrBidTooLow), errors.Is(err, auctionerrors.ErrBidTooHigh):
		var bound *bidding.BoundError
		if errors.As(err, &bound) {
			return bound.Message()
		}
		return "bid outside the allowed range"
	default:
		return "could not place bid"
	}
}
