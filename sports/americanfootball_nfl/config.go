package americanfootball_nfl

import (
	"time"
)

// Config contains NFL-specific report configuration
type Config struct {
	// Sport identification
	SportKey    string
	DisplayName string

	// Request parameters
	Regions    []string
	Market     string
	OddsFormat string
	DateFormat string

	// Week holds the betting-week boundary
	Week WeekConfig
}

// WeekConfig defines where a betting week ends. Picks lock before the
// Monday night game, so the week rolls over on Tuesday morning UTC.
type WeekConfig struct {
	EndWeekday time.Weekday
	EndHour    int
}

// DefaultConfig returns the fixed NFL spreads configuration
func DefaultConfig() *Config {
	return &Config{
		SportKey:    "americanfootball_nfl",
		DisplayName: "NFL Football",
		Regions:     []string{"us"},
		Market:      MarketSpreads,
		OddsFormat:  "decimal",
		DateFormat:  "iso",

		Week: WeekConfig{
			EndWeekday: time.Tuesday,
			EndHour:    8,
		},
	}
}

// WeekEnd returns the next week boundary strictly after the start of now's day.
// On the boundary weekday itself the window runs a full seven days.
func (c *Config) WeekEnd(now time.Time) time.Time {
	now = now.UTC()

	// Monday-based weekday index: Monday=0 ... Sunday=6
	weekday := (int(now.Weekday()) + 6) % 7
	target := (int(c.Week.EndWeekday) + 6) % 7

	daysAhead := (7 - weekday + target) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}

	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), c.Week.EndHour, 0, 0, 0, time.UTC)
}
