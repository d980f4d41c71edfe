package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// Helper to create a new Auction
func newAuction(auctionID, sellerID string, startingPrice float64, endTime time.Time) model.Auction {
	return model.Auction{
		AuctionID:     auctionID,
		ItemName:      fmt.Sprintf("%s item", auctionID),
		Description:   fmt.Sprintf("%s description", auctionID),
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		StartTime:     time.Now().UTC().Add(-time.Hour),
		EndTime:       endTime,
		SellerID:      sellerID,
		SellerName:    sellerID + " name",
		Bids:          []model.Bid{},
		CreatedAt:     time.Now().UTC(),
	}
}

// Helper to create a new Bid
func newBid(bidID, auctionID, bidderID string, amount float64, placedAt time.Time) model.Bid {
	return model.Bid{
		BidID:      bidID,
		AuctionID:  auctionID,
		BidderID:   bidderID,
		BidderName: bidderID + " name",
		Amount:     amount,
		PlacedAt:   placedAt,
	}
}

// Test CreateAuction and GetAuction
func TestMemoryStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	end := time.Now().UTC().Add(time.Hour)

	require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))

	t.Run("duplicate_id_rejected", func(t *testing.T) {
		require.Error(t, store.CreateAuction(newAuction("a1", "seller2", 50, end)))
	})

	t.Run("get_existing", func(t *testing.T) {
		a, err := store.GetAuction("a1")
		require.NoError(t, err)
		require.Equal(t, "a1", a.AuctionID)
		require.Equal(t, 100.0, a.CurrentPrice)
		require.Empty(t, a.Bids)
	})

	t.Run("get_missing", func(t *testing.T) {
		_, err := store.GetAuction("nope")
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
	})

	t.Run("get_returns_copy", func(t *testing.T) {
		a, err := store.GetAuction("a1")
		require.NoError(t, err)
		a.CurrentPrice = 999
		a.Bids = append(a.Bids, newBid("x", "a1", "u1", 999, time.Now()))

		again, err := store.GetAuction("a1")
		require.NoError(t, err)
		require.Equal(t, 100.0, again.CurrentPrice)
		require.Empty(t, again.Bids)
	})
}

// Test TryAcceptBid conditional-write semantics
func TestMemoryStore_TryAcceptBid(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	end := now.Add(time.Hour)

	tests := []struct {
		name          string
		auctionID     string
		expectedPrice float64
		bid           model.Bid
		expectedError error
	}{
		{
			name:          "accepts_at_expected_price",
			auctionID:     "a1",
			expectedPrice: 100,
			bid:           newBid("b1", "a1", "u1", 105, now),
			expectedError: nil,
		},
		{
			name:          "conflict_on_stale_expectation",
			auctionID:     "a2",
			expectedPrice: 90, // store holds 100
			bid:           newBid("b2", "a2", "u1", 105, now),
			expectedError: auctionerrors.ErrPriceConflict,
		},
		{
			name:          "unknown_auction",
			auctionID:     "missing",
			expectedPrice: 100,
			bid:           newBid("b3", "missing", "u1", 105, now),
			expectedError: auctionerrors.ErrAuctionNotFound,
		},
		{
			name:          "ended_auction_rejected",
			auctionID:     "ended",
			expectedPrice: 100,
			bid:           newBid("b4", "ended", "u1", 105, now),
			expectedError: auctionerrors.ErrAuctionEnded,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore()
			require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))
			require.NoError(t, store.CreateAuction(newAuction("a2", "seller1", 100, end)))
			require.NoError(t, store.CreateAuction(newAuction("ended", "seller1", 100, now.Add(-time.Minute))))

			updated, err := store.TryAcceptBid(tc.auctionID, tc.expectedPrice, tc.bid)
			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.bid.Amount, updated.CurrentPrice)
			require.Len(t, updated.Bids, 1)
			require.Equal(t, tc.bid.BidID, updated.Bids[0].BidID)
		})
	}
}

// A conflict must leave the auction untouched: failed writes have no effect
func TestMemoryStore_ConflictLeavesNoPartialState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	end := time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))

	_, err := store.TryAcceptBid("a1", 50, newBid("b1", "a1", "u1", 105, time.Now().UTC()))
	require.True(t, errors.Is(err, auctionerrors.ErrPriceConflict))

	a, err := store.GetAuction("a1")
	require.NoError(t, err)
	require.Equal(t, 100.0, a.CurrentPrice)
	require.Empty(t, a.Bids)
}

// The ledger is returned newest-first
func TestMemoryStore_LedgerNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	end := time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))

	price := 100.0
	for i := 1; i <= 3; i++ {
		amount := price + 5
		_, err := store.TryAcceptBid("a1", price, newBid(fmt.Sprintf("b%d", i), "a1", "u1", amount, time.Now().UTC()))
		require.NoError(t, err)
		price = amount
	}

	a, err := store.GetAuction("a1")
	require.NoError(t, err)
	require.Len(t, a.Bids, 3)
	require.Equal(t, "b3", a.Bids[0].BidID)
	require.Equal(t, "b1", a.Bids[2].BidID)
	require.Equal(t, 115.0, a.CurrentPrice)
	require.Equal(t, a.Bids[0].Amount, a.CurrentPrice)
}

// N writers racing from the same expected price: exactly one commits
func TestMemoryStore_NoLostUpdates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	end := time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))

	const writers = 32
	var wg sync.WaitGroup
	accepted := make(chan string, writers)
	conflicted := make(chan string, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bid := newBid(fmt.Sprintf("b%d", i), "a1", fmt.Sprintf("u%d", i), 105, time.Now().UTC())
			if _, err := store.TryAcceptBid("a1", 100, bid); err != nil {
				if !errors.Is(err, auctionerrors.ErrPriceConflict) {
					t.Errorf("expected conflict, got %v", err)
					return
				}
				conflicted <- bid.BidID
				return
			}
			accepted <- bid.BidID
		}(i)
	}
	wg.Wait()
	close(accepted)
	close(conflicted)

	require.Len(t, accepted, 1)
	require.Len(t, conflicted, writers-1)

	a, err := store.GetAuction("a1")
	require.NoError(t, err)
	require.Len(t, a.Bids, 1)
	require.Equal(t, 105.0, a.CurrentPrice)
}

// Test seller and list queries
func TestMemoryStore_Listings(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	end := time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.CreateAuction(newAuction("a1", "seller1", 100, end)))
	require.NoError(t, store.CreateAuction(newAuction("a2", "seller1", 200, end)))
	require.NoError(t, store.CreateAuction(newAuction("a3", "seller2", 150, end)))

	all, err := store.ListAuctions()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, a := range all {
		require.Nil(t, a.Bids, "list view omits the ledger")
	}

	mine, err := store.GetAuctionsBySeller("seller1")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	none, err := store.GetAuctionsBySeller("nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}
