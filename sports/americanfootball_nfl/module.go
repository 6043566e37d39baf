package americanfootball_nfl

import (
	"time"

	"github.com/XavierBriggs/Pythia/pkg/contracts"
	"github.com/XavierBriggs/Pythia/pkg/models"
)

// Module implements the SportModule interface for NFL Football
type Module struct {
	config *Config
}

var _ contracts.SportModule = (*Module)(nil)

// NewModule creates a new NFL sport module
func NewModule() *Module {
	return &Module{
		config: DefaultConfig(),
	}
}

// GetSportKey returns the sport identifier
func (m *Module) GetSportKey() string {
	return m.config.SportKey
}

// GetDisplayName returns the human-readable name
func (m *Module) GetDisplayName() string {
	return m.config.DisplayName
}

// GetFetchOptions returns the request parameters for the spreads report
func (m *Module) GetFetchOptions() *models.FetchOddsOptions {
	return &models.FetchOddsOptions{
		Sport:      m.config.SportKey,
		Regions:    append([]string(nil), m.config.Regions...),
		Markets:    FeaturedMarkets(),
		OddsFormat: m.config.OddsFormat,
		DateFormat: m.config.DateFormat,
	}
}

// GetSpreadMarket returns the market the report is built from
func (m *Module) GetSpreadMarket() string {
	return m.config.Market
}

// WeekEnd returns the Tuesday 08:00 UTC boundary after now
func (m *Module) WeekEnd(now time.Time) time.Time {
	return m.config.WeekEnd(now)
}

// DisplayTeamName normalizes a team name for the report
func (m *Module) DisplayTeamName(name string) string {
	return NormalizeTeamName(name)
}
