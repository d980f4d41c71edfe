package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrPriceConflict   = errors.New("price changed, re-fetch and retry")
)

// Bid validation errors
var (
	ErrAuctionEnded  = errors.New("auction ended")
	ErrSellerBid     = errors.New("seller cannot bid on own auction")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrBidTooLow     = errors.New("bid below minimum increment")
	ErrBidTooHigh    = errors.New("bid above maximum increment")
)

// Listing and request errors
var (
	ErrInvalidListing = errors.New("invalid listing")
	ErrInvalidRequest = errors.New("invalid request")
)
