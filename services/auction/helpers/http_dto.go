package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	ItemName      string    `json:"item_name" binding:"required"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	PhotoURL      string    `json:"photo_url"`
	StartingPrice float64   `json:"starting_price" binding:"required,gt=0"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time" binding:"required"`
}
