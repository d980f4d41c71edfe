package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID        string  `json:"bid_id"`
	AuctionID    string  `json:"auction_id"`
	BidderID     string  `json:"bidder_id"`
	BidderName   string  `json:"bidder_name"`
	Amount       float64 `json:"amount"`
	CurrentPrice float64 `json:"current_price"`
	PlacedAt     string  `json:"placed_at"`
}
