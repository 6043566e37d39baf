package report

import (
	"time"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// NoGamesMessage is shown when the vendor lists no games
const NoGamesMessage = "no games available"

// Report is everything one run publishes
type Report struct {
	RunID       string
	SportKey    string
	SportName   string
	GeneratedAt time.Time
	WeekEnd     time.Time

	// NoGames marks the placeholder report; Rows is empty and no JSON is exported
	NoGames bool
	Rows    []models.ReportRow
}

// NewReport creates a report of ranked rows
func NewReport(runID, sportKey, sportName string, generatedAt, weekEnd time.Time, rows []models.ReportRow) *Report {
	if rows == nil {
		rows = []models.ReportRow{}
	}
	return &Report{
		RunID:       runID,
		SportKey:    sportKey,
		SportName:   sportName,
		GeneratedAt: generatedAt,
		WeekEnd:     weekEnd,
		Rows:        rows,
	}
}

// NewNoGamesReport creates the placeholder report
func NewNoGamesReport(runID, sportKey, sportName string, generatedAt time.Time) *Report {
	return &Report{
		RunID:       runID,
		SportKey:    sportKey,
		SportName:   sportName,
		GeneratedAt: generatedAt,
		NoGames:     true,
		Rows:        []models.ReportRow{},
	}
}
