// Package report turns ranked spreads into the published artifacts: an HTML page
// and a JSON export of the same rows.
package report

import (
	"fmt"
	"time"
	_ "time/tzdata" // Display zones must resolve on hosts without a zoneinfo database

	"github.com/XavierBriggs/Pythia/pkg/models"
)

const (
	// DefaultTimezone is the display zone for the second timestamp column
	DefaultTimezone = "America/Chicago"

	// TimestampLayout renders wall-clock time without an offset suffix
	TimestampLayout = "2006-01-02 15:04:05"
)

// TeamNamer converts vendor team names for display
type TeamNamer interface {
	DisplayTeamName(name string) string
}

// Presenter formats ranked rows for display
type Presenter struct {
	namer    TeamNamer
	location *time.Location
}

// NewPresenter creates a presenter that shows times in the named zone
func NewPresenter(namer TeamNamer, timezone string) (*Presenter, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", timezone, err)
	}

	return &Presenter{
		namer:    namer,
		location: location,
	}, nil
}

// Location returns the display timezone
func (p *Presenter) Location() *time.Location {
	return p.location
}

// Rows drops price, relabels and converts each ranked row. Order is preserved.
func (p *Presenter) Rows(ranked []models.RankedRow) []models.ReportRow {
	rows := make([]models.ReportRow, len(ranked))
	for i, row := range ranked {
		utc := row.CommenceTime.UTC()
		rows[i] = models.ReportRow{
			CommenceCentral: utc.In(p.location).Format(TimestampLayout),
			CommenceUTC:     utc.Format(TimestampLayout),
			TeamName:        p.namer.DisplayTeamName(row.Name),
			AvgSpread:       row.Point,
			Score:           row.Score,
		}
	}
	return rows
}
