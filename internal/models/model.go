package models

import "time"

// Identity is the verified user bound to a connection or request.
// It is produced only by the auth package, never taken from message payloads.
type Identity struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// Viewer is one deduplicated participant of an auction room
type Viewer struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// Bid represents one accepted entry in an auction's ledger
type Bid struct {
	BidID      string    `json:"bid_id"`
	AuctionID  string    `json:"auction_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	PlacedAt   time.Time `json:"placed_at"`
}

// Auction represents one item listing with a bounded bidding window
type Auction struct {
	AuctionID     string    `json:"auction_id"`
	ItemName      string    `json:"item_name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	PhotoURL      string    `json:"photo_url"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	SellerID      string    `json:"seller_id"`
	SellerName    string    `json:"seller_name"`
	WinnerID      string    `json:"winner_id,omitempty"`
	WinnerName    string    `json:"winner_name,omitempty"`
	Bids          []Bid     `json:"bids"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ended reports whether the bidding window has closed at the given instant
func (a Auction) Ended(now time.Time) bool {
	return !now.Before(a.EndTime)
}
