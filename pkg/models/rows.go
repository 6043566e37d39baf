package models

import "time"

// TeamRow is one team's line from a single bookmaker market
type TeamRow struct {
	CommenceTime time.Time
	Name         string
	Point        float64
	Price        float64
}

// AggregatedRow is one team per game with point and price averaged across bookmakers
type AggregatedRow struct {
	CommenceTime time.Time
	Name         string
	Point        float64
	Price        float64
	Bookmakers   int // Number of contributing rows
}

// RankedRow is an AggregatedRow with its confidence score
type RankedRow struct {
	AggregatedRow
	Score int
}

// ReportRow is the display form of a RankedRow. Field order is the column order.
type ReportRow struct {
	CommenceCentral string  `json:"Commence Time (CT)"`
	CommenceUTC     string  `json:"Commence Time (UTC)"`
	TeamName        string  `json:"Team Name"`
	AvgSpread       float64 `json:"Avg Spread"`
	Score           int     `json:"Score"`
}

// ReportColumns are the display headers in ReportRow field order
var ReportColumns = []string{
	"Commence Time (CT)",
	"Commence Time (UTC)",
	"Team Name",
	"Avg Spread",
	"Score",
}
