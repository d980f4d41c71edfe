package server

import (
	"github.com/gin-gonic/gin"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/realtime"
	auctionhandler "github.com/theavnishkumar/online-auction-system-sub000/services/auction/handler"
	biddinghandler "github.com/theavnishkumar/online-auction-system-sub000/services/bidding/handler"
)

// Deps carries everything the router wires together
type Deps struct {
	Verifier   *auth.Verifier
	AuctionSvc auctionhandler.AuctionServiceInterface
	BiddingSvc biddinghandler.BiddingServiceInterface
	WS         *realtime.WSHandler
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := auctionhandler.NewAuctionHandler(d.AuctionSvc)
	biddingHandler := biddinghandler.NewBiddingHandler(d.BiddingSvc)
	authed := auth.Middleware(d.Verifier)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", authed, auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", authed, biddingHandler.PlaceBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/me/auctions", authed, auctionHandler.MyAuctionsHandler)
	}

	// identity is verified inside the handshake, before the upgrade
	router.GET("/ws", d.WS.Handle)

	return router
}
