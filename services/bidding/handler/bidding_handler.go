package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/services/bidding/helpers"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

// BiddingServiceInterface is the bid path consumed by the HTTP fallback
// endpoint. It is the same PlaceBid the realtime channel uses, so the
// conditional-write discipline holds on every entry point.
type BiddingServiceInterface interface {
	PlaceBid(auctionID string, bidder model.Identity, amount float64) (model.Auction, model.Bid, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	bidder, ok := auth.IdentityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auth.ErrInvalidToken, "missing credentials")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	updated, bid, err := h.service.PlaceBid(auctionID, bidder, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid not accepted", map[string]any{
			"auction_id": auctionID,
			"user_id":    bidder.UserID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:        bid.BidID,
		AuctionID:    bid.AuctionID,
		BidderID:     bid.BidderID,
		BidderName:   bid.BidderName,
		Amount:       bid.Amount,
		CurrentPrice: updated.CurrentPrice,
		PlacedAt:     bid.PlacedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	})
}
