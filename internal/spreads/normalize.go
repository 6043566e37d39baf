// Package spreads turns vendor spread quotes into ranked per-team rows.
//
// The stages run in order: Normalize flattens the vendor events, FilterWeek keeps
// games inside the betting week, Aggregate averages lines across bookmakers and Rank
// assigns confidence scores. Each stage returns a new slice.
package spreads

import (
	"fmt"
	"strings"
	"time"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// outcomesPerMarket is the number of outcomes in a two-team spread market
const outcomesPerMarket = 2

// Normalize flattens events into one TeamRow per team per bookmaker market.
// Markets whose key differs from market are skipped.
func Normalize(events []models.Event, market string) ([]models.TeamRow, error) {
	var rows []models.TeamRow

	for _, event := range events {
		commenceTime, err := time.Parse(time.RFC3339, strings.TrimSpace(event.CommenceTime))
		if err != nil {
			return nil, &ShapeError{
				EventID: event.ID,
				Reason:  fmt.Sprintf("invalid commence_time %q", event.CommenceTime),
			}
		}
		commenceTime = commenceTime.UTC()

		for _, bookmaker := range event.Bookmakers {
			for _, mkt := range bookmaker.Markets {
				if mkt.Key != market {
					continue
				}

				if len(mkt.Outcomes) != outcomesPerMarket {
					return nil, &ShapeError{
						EventID:   event.ID,
						Bookmaker: bookmaker.Key,
						Market:    mkt.Key,
						Reason:    fmt.Sprintf("expected %d outcomes, got %d", outcomesPerMarket, len(mkt.Outcomes)),
					}
				}

				for _, outcome := range mkt.Outcomes {
					if outcome.Point == nil {
						return nil, &ShapeError{
							EventID:   event.ID,
							Bookmaker: bookmaker.Key,
							Market:    mkt.Key,
							Reason:    fmt.Sprintf("outcome %q has no point", outcome.Name),
						}
					}

					rows = append(rows, models.TeamRow{
						CommenceTime: commenceTime,
						Name:         outcome.Name,
						Point:        *outcome.Point,
						Price:        outcome.Price,
					})
				}
			}
		}
	}

	return rows, nil
}
