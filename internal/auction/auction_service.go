package auction

import (
	"fmt"
	"math"
	"time"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/repository"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// Service defines the listing-side business logic: creating auctions and
// reading them back with the winner derived once the window has closed.
type Service struct {
	store repository.AuctionStore
}

// NewService creates a new auction Service instance
func NewService(store repository.AuctionStore) *Service {
	return &Service{store: store}
}

// CreateParams carries the seller-supplied fields of a new listing
type CreateParams struct {
	ItemName      string
	Description   string
	Category      string
	PhotoURL      string
	StartingPrice float64
	StartTime     time.Time
	EndTime       time.Time
}

// CreateAuction validates and stores a new listing. The seller comes from the
// verified identity, never from the request body.
func (s *Service) CreateAuction(seller model.Identity, p CreateParams) (model.Auction, error) {
	if seller.UserID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - missing seller id", auctionerrors.ErrInvalidRequest)
	}
	if p.ItemName == "" {
		return model.Auction{}, fmt.Errorf("service: %w - item name is required", auctionerrors.ErrInvalidListing)
	}
	if p.StartingPrice <= 0 || math.IsNaN(p.StartingPrice) || math.IsInf(p.StartingPrice, 0) {
		return model.Auction{}, fmt.Errorf("service: %w - starting price must be a positive number", auctionerrors.ErrInvalidListing)
	}

	now := time.Now().UTC()
	start := p.StartTime
	if start.IsZero() {
		start = now
	}
	if !p.EndTime.After(start) {
		return model.Auction{}, fmt.Errorf("service: %w - end time must be after start time", auctionerrors.ErrInvalidListing)
	}

	a := model.Auction{
		AuctionID:     utils.GenerateID(),
		ItemName:      p.ItemName,
		Description:   p.Description,
		Category:      p.Category,
		PhotoURL:      p.PhotoURL,
		StartingPrice: p.StartingPrice,
		CurrentPrice:  p.StartingPrice,
		StartTime:     start,
		EndTime:       p.EndTime,
		SellerID:      seller.UserID,
		SellerName:    seller.UserName,
		Bids:          []model.Bid{},
		CreatedAt:     now,
	}

	if err := s.store.CreateAuction(a); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return a, nil
}

// GetAuction returns the full auction state, winner populated once ended
func (s *Service) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidRequest)
	}

	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	deriveWinner(&a, time.Now().UTC())
	return a, nil
}

// ListAuctions returns all listings, optionally only those still open
func (s *Service) ListAuctions(liveOnly bool) ([]model.Auction, error) {
	list, err := s.store.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	now := time.Now().UTC()
	if !liveOnly {
		return list, nil
	}
	live := make([]model.Auction, 0, len(list))
	for _, a := range list {
		if !a.Ended(now) {
			live = append(live, a)
		}
	}
	return live, nil
}

// GetAuctionsBySeller returns all listings created by one seller
func (s *Service) GetAuctionsBySeller(sellerID string) ([]model.Auction, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("service: %w - empty seller ID", auctionerrors.ErrInvalidRequest)
	}

	list, err := s.store.GetAuctionsBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for seller %s: %w", sellerID, err)
	}
	return list, nil
}

// deriveWinner fills in the winner fields once the window has closed. The
// ledger only ever grows at strictly increasing amounts, so the highest bid
// is unique.
func deriveWinner(a *model.Auction, now time.Time) {
	if !a.Ended(now) || len(a.Bids) == 0 {
		return
	}

	winning := a.Bids[0]
	for _, b := range a.Bids[1:] {
		if b.Amount > winning.Amount {
			winning = b
		}
	}
	a.WinnerID = winning.BidderID
	a.WinnerName = winning.BidderName
}
