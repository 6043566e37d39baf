package spreads

import (
	"fmt"
	"sort"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

// ConfidenceScores returns [n/2, ..., 1, 1, ..., n/2].
func ConfidenceScores(n int) ([]int, error) {
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddRowCount, n)
	}

	half := n / 2
	scores := make([]int, n)
	for i := 0; i < half; i++ {
		scores[i] = half - i
		scores[half+i] = i + 1
	}
	return scores, nil
}

// Rank sorts rows by average spread, most negative first, and assigns confidence
// scores positionally. The strongest favorite and the biggest underdog share the
// top score while the closest games get 1.
func Rank(rows []models.AggregatedRow) ([]models.RankedRow, error) {
	scores, err := ConfidenceScores(len(rows))
	if err != nil {
		return nil, err
	}

	sorted := make([]models.AggregatedRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Point != sorted[j].Point {
			return sorted[i].Point < sorted[j].Point
		}
		if !sorted[i].CommenceTime.Equal(sorted[j].CommenceTime) {
			return sorted[i].CommenceTime.Before(sorted[j].CommenceTime)
		}
		return sorted[i].Name < sorted[j].Name
	})

	ranked := make([]models.RankedRow, len(sorted))
	for i, row := range sorted {
		ranked[i] = models.RankedRow{
			AggregatedRow: row,
			Score:         scores[i],
		}
	}
	return ranked, nil
}
