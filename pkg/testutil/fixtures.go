package testutil

import (
	"context"
	"time"

	"github.com/XavierBriggs/Pythia/pkg/contracts"
	"github.com/XavierBriggs/Pythia/pkg/models"
)

// BookLine is one bookmaker's spread for the home team. The away team gets -HomePoint.
type BookLine struct {
	BookKey   string
	HomePoint float64
	HomePrice float64
	AwayPrice float64
}

// NewTestEvent creates a spreads event with one market per bookmaker line
func NewTestEvent(eventID, homeTeam, awayTeam string, commence time.Time, lines ...BookLine) models.Event {
	event := models.Event{
		ID:           eventID,
		SportKey:     "americanfootball_nfl",
		SportTitle:   "NFL",
		CommenceTime: commence.UTC().Format(time.RFC3339),
		HomeTeam:     homeTeam,
		AwayTeam:     awayTeam,
	}

	for _, line := range lines {
		event.Bookmakers = append(event.Bookmakers, models.Bookmaker{
			Key:   line.BookKey,
			Title: line.BookKey,
			Markets: []models.Market{
				{
					Key: "spreads",
					Outcomes: []models.Outcome{
						{Name: homeTeam, Price: line.HomePrice, Point: PtrFloat64(line.HomePoint)},
						{Name: awayTeam, Price: line.AwayPrice, Point: PtrFloat64(-line.HomePoint)},
					},
				},
			},
		})
	}

	return event
}

// Line is shorthand for an even-priced BookLine
func Line(bookKey string, homePoint float64) BookLine {
	return BookLine{BookKey: bookKey, HomePoint: homePoint, HomePrice: 1.91, AwayPrice: 1.91}
}

// NewTestRow creates a TeamRow
func NewTestRow(commence time.Time, name string, point, price float64) models.TeamRow {
	return models.TeamRow{
		CommenceTime: commence,
		Name:         name,
		Point:        point,
		Price:        price,
	}
}

// WeekFixture returns four games inside the week of Wednesday 2026-10-21 12:00 UTC
// (ending Tuesday 2026-10-27 08:00 UTC) and one game after the boundary.
func WeekFixture() (now time.Time, events []models.Event) {
	now = time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 10, 25, 17, 0, 0, 0, time.UTC)

	events = []models.Event{
		NewTestEvent("g1", "Kansas City Chiefs", "Las Vegas Raiders", sunday,
			Line("fanduel", -9.5), Line("draftkings", -10.0)),
		NewTestEvent("g2", "Los Angeles Chargers", "New York Jets", sunday,
			Line("fanduel", -2.5), Line("draftkings", -3.5)),
		NewTestEvent("g3", "Green Bay Packers", "Chicago Bears", sunday.Add(3*time.Hour),
			Line("fanduel", -6.5)),
		// Monday night, still inside the window
		NewTestEvent("g4", "New York Giants", "Los Angeles Rams", time.Date(2026, 10, 27, 0, 15, 0, 0, time.UTC),
			Line("fanduel", 1.5), Line("betmgm", 2.5)),
		// Next week
		NewTestEvent("g5", "Buffalo Bills", "Miami Dolphins", time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
			Line("fanduel", -7.0)),
	}
	return now, events
}

// PtrFloat64 creates a pointer to float64
func PtrFloat64(val float64) *float64 {
	return &val
}

// MockVendorAdapter is a test adapter that returns predetermined events
type MockVendorAdapter struct {
	FetchOddsFunc      func(opts *models.FetchOddsOptions) ([]models.Event, error)
	SupportsMarketFunc func(market string) bool
	GetRateLimitsFunc  func() *models.RateLimits

	Calls int
}

var _ contracts.VendorAdapter = (*MockVendorAdapter)(nil)

func (m *MockVendorAdapter) FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.Event, error) {
	m.Calls++
	if m.FetchOddsFunc != nil {
		return m.FetchOddsFunc(opts)
	}
	return []models.Event{}, nil
}

func (m *MockVendorAdapter) SupportsMarket(market string) bool {
	if m.SupportsMarketFunc != nil {
		return m.SupportsMarketFunc(market)
	}
	return true
}

func (m *MockVendorAdapter) GetRateLimits() *models.RateLimits {
	if m.GetRateLimitsFunc != nil {
		return m.GetRateLimitsFunc()
	}
	return &models.RateLimits{
		RequestsRemaining: 500,
		RequestsUsed:      0,
		Known:             true,
	}
}
