package models

// Event represents one scheduled game as returned by the odds vendor
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"` // ISO-8601, parsed by the normalizer
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one odds provider's quote for an event
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

// Market is one betting market instance (spreads has exactly two outcomes)
type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is one team's quoted line
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`           // Decimal odds
	Point *float64 `json:"point,omitempty"` // Spread handicap
}

// FetchOddsOptions contains parameters for fetching odds
type FetchOddsOptions struct {
	Sport      string
	Regions    []string
	Markets    []string
	OddsFormat string
	DateFormat string
}

// RateLimits contains quota information reported by the vendor.
// Known is false until a response carried the quota headers.
type RateLimits struct {
	RequestsRemaining int
	RequestsUsed      int
	Known             bool
}
