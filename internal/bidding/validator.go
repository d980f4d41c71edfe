package bidding

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/theavnishkumar/online-auction-system-sub000/internal/auctionerrors"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// IncrementBounds limits how far above the floor an acceptable bid may land.
// The floor is the greater of the auction's current and starting price; a bid
// must fall in [floor+Min, floor+Max].
type IncrementBounds struct {
	Min float64
	Max float64
}

// DefaultBounds is the reference bidding policy
var DefaultBounds = IncrementBounds{Min: 1, Max: 10}

// BoundError is a bid outside the allowed increment window. It carries the
// computed limit so callers can show it without parsing error text.
type BoundError struct {
	Err   error // ErrBidTooLow or ErrBidTooHigh
	Limit float64
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("%v - %s", e.Err, e.Message())
}

// Message is the client-facing text for the rejection
func (e *BoundError) Message() string {
	if errors.Is(e.Err, auctionerrors.ErrBidTooLow) {
		return fmt.Sprintf("bid must be at least %.2f", e.Limit)
	}
	return fmt.Sprintf("bid must be at most %.2f", e.Limit)
}

func (e *BoundError) Unwrap() error { return e.Err }

// ValidateBid checks a proposed amount against an auction snapshot. Rules are
// applied in order and the first failing rule wins. A nil return means the
// bid is acceptable against this snapshot; acceptance is still subject to the
// store's conditional write.
func ValidateBid(a model.Auction, amount float64, bidderID string, now time.Time, bounds IncrementBounds) error {
	if a.Ended(now) {
		return fmt.Errorf("validate: %w", auctionerrors.ErrAuctionEnded)
	}
	if bidderID == a.SellerID {
		return fmt.Errorf("validate: %w", auctionerrors.ErrSellerBid)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("validate: %w", auctionerrors.ErrInvalidAmount)
	}

	floor := math.Max(a.CurrentPrice, a.StartingPrice)
	minBid := floor + bounds.Min
	maxBid := floor + bounds.Max
	if amount < minBid {
		return fmt.Errorf("validate: %w", &BoundError{Err: auctionerrors.ErrBidTooLow, Limit: minBid})
	}
	if amount > maxBid {
		return fmt.Errorf("validate: %w", &BoundError{Err: auctionerrors.ErrBidTooHigh, Limit: maxBid})
	}

	return nil
}
