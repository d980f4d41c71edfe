package main

import (
	"fmt"
	"os"
	"time"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auction"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/bidding"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/config"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/realtime"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/repository"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set")
		os.Exit(1)
	}

	store := repository.NewMemoryStore()
	verifier := auth.NewVerifier(cfg.JWTSecret)

	registry := realtime.NewRoomRegistry()
	hub := realtime.NewHub(registry, cfg.SendBufferSize)

	bounds := bidding.IncrementBounds{Min: cfg.MinIncrement, Max: cfg.MaxIncrement}
	biddingSvc := bidding.NewService(store, hub, bounds)
	auctionSvc := auction.NewService(store)

	ws := realtime.NewWSHandler(verifier, hub, registry, biddingSvc, cfg.PingInterval, cfg.WriteTimeout)

	if cfg.DemoSeed {
		seedDemoData(auctionSvc, verifier, cfg.TokenTTL)
	}

	router := server.SetupRouter(server.Deps{
		Verifier:   verifier,
		AuctionSvc: auctionSvc,
		BiddingSvc: biddingSvc,
		WS:         ws,
	})

	fmt.Printf("Starting auction server on %s...\n", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seedDemoData creates sample listings and prints ready-to-use tokens for
// trying the API and the websocket channel by hand
func seedDemoData(svc *auction.Service, verifier *auth.Verifier, ttl time.Duration) {
	sellers := []struct {
		id, name string
	}{
		{"seller1", "Seller One"},
		{"seller2", "Seller Two"},
	}

	for i, s := range sellers {
		seller := model.Identity{UserID: s.id, UserName: s.name, Role: "user"}
		_, err := svc.CreateAuction(seller, auction.CreateParams{
			ItemName:      fmt.Sprintf("Demo Item %d", i+1),
			Description:   fmt.Sprintf("Sample listing %d", i+1),
			Category:      "demo",
			StartingPrice: float64(100 * (i + 1)),
			EndTime:       time.Now().UTC().Add(24 * time.Hour),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed demo auction: %v\n", err)
			continue
		}
	}

	for _, u := range []struct {
		id, name string
	}{
		{"seller1", "Seller One"},
		{"bidder1", "Bidder One"},
		{"bidder2", "Bidder Two"},
	} {
		token, err := verifier.Sign(model.Identity{UserID: u.id, UserName: u.name, Role: "user"}, ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sign demo token for %s: %v\n", u.id, err)
			continue
		}
		fmt.Printf("Demo token for %s: %s\n", u.id, token)
	}
}
