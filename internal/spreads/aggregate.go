package spreads

import (
	"github.com/XavierBriggs/Pythia/pkg/models"
	"github.com/shopspring/decimal"
)

// groupKey identifies one team in one game. Instants must match exactly.
type groupKey struct {
	commence int64
	name     string
}

type accumulator struct {
	row   models.AggregatedRow
	point decimal.Decimal
	price decimal.Decimal
}

// Aggregate averages point and price across all rows sharing a commence time and
// team name. Output order follows the first appearance of each key.
func Aggregate(rows []models.TeamRow) []models.AggregatedRow {
	groups := make(map[groupKey]*accumulator, len(rows))
	order := make([]groupKey, 0, len(rows))

	for _, row := range rows {
		key := groupKey{commence: row.CommenceTime.UnixNano(), name: row.Name}

		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{
				row: models.AggregatedRow{
					CommenceTime: row.CommenceTime,
					Name:         row.Name,
				},
				point: decimal.Zero,
				price: decimal.Zero,
			}
			groups[key] = acc
			order = append(order, key)
		}

		acc.point = acc.point.Add(decimal.NewFromFloat(row.Point))
		acc.price = acc.price.Add(decimal.NewFromFloat(row.Price))
		acc.row.Bookmakers++
	}

	aggregated := make([]models.AggregatedRow, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		n := decimal.NewFromInt(int64(acc.row.Bookmakers))

		row := acc.row
		row.Point = acc.point.Div(n).InexactFloat64()
		row.Price = acc.price.Div(n).InexactFloat64()
		aggregated = append(aggregated, row)
	}

	return aggregated
}
