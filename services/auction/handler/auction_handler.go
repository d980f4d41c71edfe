package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auction"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/services/auction/helpers"
	"github.com/theavnishkumar/online-auction-system-sub000/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(seller model.Identity, p auction.CreateParams) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions(liveOnly bool) ([]model.Auction, error)
	GetAuctionsBySeller(sellerID string) ([]model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	seller, ok := auth.IdentityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auth.ErrInvalidToken, "missing credentials")
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.CreateAuction(seller, auction.CreateParams{
		ItemName:      req.ItemName,
		Description:   req.Description,
		Category:      req.Category,
		PhotoURL:      req.PhotoURL,
		StartingPrice: req.StartingPrice,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateAuctionHandler: failed to create auction", map[string]any{
			"user_id": seller.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"seller_id":  a.SellerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions, with ?status=live filtering
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	liveOnly := c.Query("status") == "live"
	list, err := h.service.ListAuctions(liveOnly)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if list == nil {
		list = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, list, "auctions retrieved successfully")
}

// MyAuctionsHandler handles GET /users/me/auctions
func (h *AuctionHandler) MyAuctionsHandler(c *gin.Context) {
	seller, ok := auth.IdentityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auth.ErrInvalidToken, "missing credentials")
		return
	}

	list, err := h.service.GetAuctionsBySeller(seller.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if list == nil {
		list = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, list, "auctions retrieved successfully")
}
