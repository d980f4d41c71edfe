package bidding

import (
	"fmt"
	"sync"
	"time"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/repository"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// Notifier receives accepted-bid events for fan-out to room viewers.
// BidAccepted is invoked inside the per-auction critical section, so calls
// for one auction arrive in commit order.
type Notifier interface {
	BidAccepted(auction model.Auction, bid model.Bid)
}

// Service defines the business logic for bid acceptance
type Service struct {
	store    repository.AuctionStore
	notifier Notifier
	bounds   IncrementBounds

	mu    sync.Mutex
	locks map[string]*sync.Mutex // key: auctionID
}

// NewService creates a new bidding Service instance. The notifier may be nil
// when no realtime fan-out is wired (unit tests, offline tooling).
func NewService(store repository.AuctionStore, notifier Notifier, bounds IncrementBounds) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		bounds:   bounds,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Bounds returns the increment policy the service validates against
func (s *Service) Bounds() IncrementBounds {
	return s.bounds
}

// PlaceBid validates and records a bid for an auction. The auction snapshot
// is read before the per-auction lock, so two bidders racing from the same
// price both pass validation and exactly one survives the store's
// compare-and-swap; the loser gets ErrPriceConflict and must retry against
// fresh state.
func (s *Service) PlaceBid(auctionID string, bidder model.Identity, amount float64) (model.Auction, model.Bid, error) {
	if auctionID == "" || bidder.UserID == "" {
		return model.Auction{}, model.Bid{}, fmt.Errorf("service: %w - missing auction or bidder id", auctionerrors.ErrInvalidRequest)
	}

	snap, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("service: failed to read auction %s: %w", auctionID, err)
	}

	now := time.Now().UTC()
	if err := ValidateBid(snap, amount, bidder.UserID, now, s.bounds); err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("service: bid rejected for auction %s: %w", auctionID, err)
	}

	bid := model.Bid{
		BidID:      utils.GenerateID(),
		AuctionID:  auctionID,
		BidderID:   bidder.UserID,
		BidderName: bidder.UserName,
		Amount:     amount,
		PlacedAt:   now,
	}

	mu := s.lockFor(auctionID)
	mu.Lock()
	defer mu.Unlock()

	updated, err := s.store.TryAcceptBid(auctionID, snap.CurrentPrice, bid)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("service: failed to accept bid for auction %s: %w", auctionID, err)
	}

	if s.notifier != nil {
		s.notifier.BidAccepted(updated, bid)
	}

	return updated, bid, nil
}

// lockFor returns the serialization lock for one auction id
func (s *Service) lockFor(auctionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.locks[auctionID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[auctionID] = mu
	}
	return mu
}
