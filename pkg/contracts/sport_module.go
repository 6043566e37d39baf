package contracts

import (
	"time"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// SportModule defines the sport-specific constants and rules used by a report run
type SportModule interface {
	// GetSportKey returns the vendor identifier for this sport (e.g., "americanfootball_nfl")
	GetSportKey() string

	// GetDisplayName returns the human-readable name (e.g., "NFL Football")
	GetDisplayName() string

	// GetFetchOptions returns the fixed request parameters for the spreads report
	GetFetchOptions() *models.FetchOddsOptions

	// GetSpreadMarket returns the market key the normalizer keeps
	GetSpreadMarket() string

	// WeekEnd returns the exclusive upper bound of the betting week containing now
	WeekEnd(now time.Time) time.Time

	// DisplayTeamName converts a vendor team name to its report form
	DisplayTeamName(name string) string
}
