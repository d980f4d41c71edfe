package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh identifier for auctions, bids and connections
func GenerateID() string {
	return uuid.New().String()
}
