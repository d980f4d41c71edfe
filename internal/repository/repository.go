package repository

import (
	"fmt"
	"sync"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// AuctionStore defines the auction storage interface for the marketplace
type AuctionStore interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	GetAuctionsBySeller(sellerID string) ([]model.Auction, error)
	TryAcceptBid(auctionID string, expectedPrice float64, bid model.Bid) (model.Auction, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]*model.Auction // key: auctionID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]*model.Auction),
	}
}

// CreateAuction inserts a new auction record
func (s *MemoryStore) CreateAuction(a model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: id already exists", a.AuctionID)
	}

	stored := a
	stored.Bids = append([]model.Bid(nil), a.Bids...)
	s.auctions[a.AuctionID] = &stored
	return nil
}

// GetAuction returns a copy of the auction with its bid ledger newest-first
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return snapshot(a), nil
}

// ListAuctions returns copies of all auctions without their bid ledgers
func (s *MemoryStore) ListAuctions() ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		c := *a
		c.Bids = nil
		list = append(list, c)
	}
	return list, nil
}

// GetAuctionsBySeller returns all auctions listed by a seller, ledgers omitted
func (s *MemoryStore) GetAuctionsBySeller(sellerID string) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Auction, 0)
	for _, a := range s.auctions {
		if a.SellerID == sellerID {
			c := *a
			c.Bids = nil
			list = append(list, c)
		}
	}
	return list, nil
}

// TryAcceptBid performs the conditional write at the heart of bid acceptance.
// The price update and the ledger append happen together, and only if the
// stored current price still equals expectedPrice. A mismatch reports
// ErrPriceConflict so the caller can re-fetch and retry; it is not a
// rejection on merits.
func (s *MemoryStore) TryAcceptBid(auctionID string, expectedPrice float64, bid model.Bid) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("accept bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	// the caller validated against a snapshot that may predate the end of
	// the window
	if a.Ended(bid.PlacedAt) {
		return model.Auction{}, fmt.Errorf("accept bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionEnded)
	}

	if a.CurrentPrice != expectedPrice {
		return model.Auction{}, fmt.Errorf("accept bid for auction %s: expected price %.2f, have %.2f: %w",
			auctionID, expectedPrice, a.CurrentPrice, auctionerrors.ErrPriceConflict)
	}

	a.CurrentPrice = bid.Amount
	a.Bids = append(a.Bids, bid)
	return snapshot(a), nil
}

// snapshot deep-copies an auction and orders its ledger newest-first.
// Callers must hold at least a read lock.
func snapshot(a *model.Auction) model.Auction {
	c := *a
	c.Bids = make([]model.Bid, len(a.Bids))
	for i, b := range a.Bids {
		c.Bids[len(a.Bids)-1-i] = b
	}
	return c
}
