package contracts

import (
	"context"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// VendorAdapter defines the interface for fetching odds from external vendors
type VendorAdapter interface {
	// FetchOdds retrieves the raw event list for one sport/market/region combination.
	// An empty slice with a nil error means the vendor has no games listed.
	FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.Event, error)

	// SupportsMarket checks if this adapter supports a given market
	SupportsMarket(market string) bool

	// GetRateLimits returns the quota seen on the last response
	GetRateLimits() *models.RateLimits
}
