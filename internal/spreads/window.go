package spreads

import (
	"time"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// FilterWeek keeps rows with now < CommenceTime < end. Both bounds are exclusive.
func FilterWeek(rows []models.TeamRow, now, end time.Time) []models.TeamRow {
	filtered := make([]models.TeamRow, 0, len(rows))
	for _, row := range rows {
		if row.CommenceTime.After(now) && row.CommenceTime.Before(end) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
