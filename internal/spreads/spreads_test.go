package spreads_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/XavierBriggs/Pythia/internal/spreads"
	"github.com/XavierBriggs/Pythia/pkg/models"
	"github.com/XavierBriggs/Pythia/pkg/testutil"
	"github.com/XavierBriggs/Pythia/sports/americanfootball_nfl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2026, 10, 25, 17, 0, 0, 0, time.UTC)

func TestNormalize_TwoRowsPerEvent(t *testing.T) {
	for _, n := range []int{1, 3, 16} {
		t.Run(fmt.Sprintf("%d events", n), func(t *testing.T) {
			events := make([]models.Event, n)
			for i := range events {
				events[i] = testutil.NewTestEvent(fmt.Sprintf("e%d", i), "Home", "Away",
					kickoff.Add(time.Duration(i)*time.Hour), testutil.Line("fanduel", -3.5))
			}

			rows, err := spreads.Normalize(events, "spreads")
			require.NoError(t, err)
			assert.Len(t, rows, 2*n)
		})
	}
}

func TestNormalize_RowContents(t *testing.T) {
	event := testutil.NewTestEvent("e1", "Kansas City Chiefs", "Las Vegas Raiders", kickoff,
		testutil.BookLine{BookKey: "fanduel", HomePoint: -9.5, HomePrice: 1.87, AwayPrice: 1.95},
		testutil.BookLine{BookKey: "draftkings", HomePoint: -10, HomePrice: 1.91, AwayPrice: 1.91})

	rows, err := spreads.Normalize([]models.Event{event}, "spreads")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, testutil.NewTestRow(kickoff, "Kansas City Chiefs", -9.5, 1.87), rows[0])
	assert.Equal(t, testutil.NewTestRow(kickoff, "Las Vegas Raiders", 9.5, 1.95), rows[1])
	assert.Equal(t, testutil.NewTestRow(kickoff, "Kansas City Chiefs", -10, 1.91), rows[2])
	assert.Equal(t, testutil.NewTestRow(kickoff, "Las Vegas Raiders", 10, 1.91), rows[3])

	for _, row := range rows {
		assert.Equal(t, time.UTC, row.CommenceTime.Location())
	}
}

func TestNormalize_OffsetCommenceTimeIsUTC(t *testing.T) {
	event := testutil.NewTestEvent("e1", "A", "B", kickoff, testutil.Line("fanduel", -1))
	event.CommenceTime = " 2026-10-25T12:00:00-05:00 "

	rows, err := spreads.Normalize([]models.Event{event}, "spreads")
	require.NoError(t, err)
	assert.True(t, kickoff.Equal(rows[0].CommenceTime))
}

func TestNormalize_SkipsOtherMarkets(t *testing.T) {
	event := testutil.NewTestEvent("e1", "A", "B", kickoff, testutil.Line("fanduel", -1))
	event.Bookmakers[0].Markets = append(event.Bookmakers[0].Markets, models.Market{
		Key:      "h2h",
		Outcomes: []models.Outcome{{Name: "A", Price: 1.5}, {Name: "B", Price: 2.6}, {Name: "Draw", Price: 20}},
	})

	rows, err := spreads.Normalize([]models.Event{event}, "spreads")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestNormalize_EventWithoutBookmakers(t *testing.T) {
	event := testutil.NewTestEvent("e1", "A", "B", kickoff)

	rows, err := spreads.Normalize([]models.Event{event}, "spreads")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNormalize_ShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *models.Event)
		reason string
	}{
		{
			name: "one outcome",
			mutate: func(e *models.Event) {
				m := &e.Bookmakers[0].Markets[0]
				m.Outcomes = m.Outcomes[:1]
			},
			reason: "expected 2 outcomes, got 1",
		},
		{
			name: "three outcomes",
			mutate: func(e *models.Event) {
				m := &e.Bookmakers[0].Markets[0]
				m.Outcomes = append(m.Outcomes, models.Outcome{Name: "C", Price: 2, Point: testutil.PtrFloat64(0)})
			},
			reason: "expected 2 outcomes, got 3",
		},
		{
			name: "missing point",
			mutate: func(e *models.Event) {
				e.Bookmakers[0].Markets[0].Outcomes[1].Point = nil
			},
			reason: "has no point",
		},
		{
			name: "bad commence time",
			mutate: func(e *models.Event) {
				e.CommenceTime = "next sunday"
			},
			reason: "invalid commence_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := testutil.NewTestEvent("e1", "A", "B", kickoff, testutil.Line("fanduel", -1))
			tt.mutate(&event)

			rows, err := spreads.Normalize([]models.Event{event}, "spreads")
			require.Error(t, err)
			assert.Nil(t, rows)
			assert.True(t, errors.Is(err, spreads.ErrDataShape))

			var shapeErr *spreads.ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, "e1", shapeErr.EventID)
			assert.Contains(t, shapeErr.Reason, tt.reason)
		})
	}
}

func TestFilterWeek_StrictBounds(t *testing.T) {
	now := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	end := americanfootball_nfl.NewModule().WeekEnd(now)
	require.Equal(t, time.Date(2026, 10, 27, 8, 0, 0, 0, time.UTC), end)

	rows := []models.TeamRow{
		testutil.NewTestRow(now, "at now", -1, 1.9),
		testutil.NewTestRow(now.Add(time.Millisecond), "just after now", -1, 1.9),
		testutil.NewTestRow(end.Add(-time.Millisecond), "just before end", -1, 1.9),
		testutil.NewTestRow(end, "at end", -1, 1.9),
		testutil.NewTestRow(now.Add(-time.Hour), "already started", -1, 1.9),
		testutil.NewTestRow(end.Add(72*time.Hour), "next week", -1, 1.9),
	}

	filtered := spreads.FilterWeek(rows, now, end)

	names := make([]string, len(filtered))
	for i, row := range filtered {
		names[i] = row.Name
	}
	assert.Equal(t, []string{"just after now", "just before end"}, names)
}

func TestFilterWeek_DoesNotModifyInput(t *testing.T) {
	now := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	rows := []models.TeamRow{
		testutil.NewTestRow(now.Add(-time.Hour), "past", -1, 1.9),
		testutil.NewTestRow(now.Add(time.Hour), "future", -1, 1.9),
	}

	filtered := spreads.FilterWeek(rows, now, now.Add(48*time.Hour))
	require.Len(t, filtered, 1)
	assert.Equal(t, "past", rows[0].Name)
	assert.Len(t, rows, 2)
}

func TestAggregate_Mean(t *testing.T) {
	rows := []models.TeamRow{
		testutil.NewTestRow(kickoff, "Kansas City Chiefs", -3.5, 1.91),
		testutil.NewTestRow(kickoff, "Las Vegas Raiders", 3.5, 1.91),
		testutil.NewTestRow(kickoff, "Kansas City Chiefs", -4.0, 1.87),
		testutil.NewTestRow(kickoff, "Las Vegas Raiders", 4.0, 1.95),
		testutil.NewTestRow(kickoff, "Kansas City Chiefs", -4.5, 1.83),
		testutil.NewTestRow(kickoff, "Las Vegas Raiders", 4.5, 2.00),
	}

	aggregated := spreads.Aggregate(rows)
	require.Len(t, aggregated, 2)

	assert.Equal(t, "Kansas City Chiefs", aggregated[0].Name)
	assert.Equal(t, -4.0, aggregated[0].Point)
	assert.Equal(t, 1.87, aggregated[0].Price)
	assert.Equal(t, 3, aggregated[0].Bookmakers)

	assert.Equal(t, "Las Vegas Raiders", aggregated[1].Name)
	assert.Equal(t, 4.0, aggregated[1].Point)
	assert.InDelta(t, 1.9533333, aggregated[1].Price, 1e-6)
}

func TestAggregate_KeysRequireExactMatch(t *testing.T) {
	rows := []models.TeamRow{
		testutil.NewTestRow(kickoff, "Chiefs", -3, 1.9),
		testutil.NewTestRow(kickoff.Add(time.Second), "Chiefs", -5, 1.9),
		testutil.NewTestRow(kickoff, "chiefs", -7, 1.9),
		// Same instant in another zone is the same key
		testutil.NewTestRow(kickoff.In(time.FixedZone("CDT", -5*3600)), "Chiefs", -4, 1.9),
	}

	aggregated := spreads.Aggregate(rows)
	require.Len(t, aggregated, 3)
	assert.Equal(t, -3.5, aggregated[0].Point)
	assert.Equal(t, 2, aggregated[0].Bookmakers)
	assert.Equal(t, -5.0, aggregated[1].Point)
	assert.Equal(t, -7.0, aggregated[2].Point)
}

func TestAggregate_SingleContributorKept(t *testing.T) {
	aggregated := spreads.Aggregate([]models.TeamRow{
		testutil.NewTestRow(kickoff, "Bears", 6.5, 1.91),
	})
	require.Len(t, aggregated, 1)
	assert.Equal(t, 6.5, aggregated[0].Point)
	assert.Equal(t, 1, aggregated[0].Bookmakers)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, spreads.Aggregate(nil))
}

func TestConfidenceScores(t *testing.T) {
	tests := []struct {
		n        int
		expected []int
	}{
		{0, []int{}},
		{2, []int{1, 1}},
		{4, []int{2, 1, 1, 2}},
		{8, []int{4, 3, 2, 1, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			scores, err := spreads.ConfidenceScores(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, scores)
		})
	}
}

func TestConfidenceScores_Odd(t *testing.T) {
	_, err := spreads.ConfidenceScores(3)
	assert.True(t, errors.Is(err, spreads.ErrOddRowCount))
}

func TestRank_ScoreSymmetry(t *testing.T) {
	rows := []models.AggregatedRow{
		{CommenceTime: kickoff, Name: "Underdog", Point: 7},
		{CommenceTime: kickoff, Name: "Favorite", Point: -7},
		{CommenceTime: kickoff.Add(time.Hour), Name: "Slight Dog", Point: 1.5},
		{CommenceTime: kickoff.Add(time.Hour), Name: "Slight Fav", Point: -1.5},
	}

	ranked, err := spreads.Rank(rows)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	var names []string
	var scores []int
	for _, row := range ranked {
		names = append(names, row.Name)
		scores = append(scores, row.Score)
	}
	assert.Equal(t, []string{"Favorite", "Slight Fav", "Slight Dog", "Underdog"}, names)
	assert.Equal(t, []int{2, 1, 1, 2}, scores)

	// Input order untouched
	assert.Equal(t, "Underdog", rows[0].Name)
}

func TestRank_TiesAreDeterministic(t *testing.T) {
	rows := []models.AggregatedRow{
		{CommenceTime: kickoff.Add(time.Hour), Name: "B", Point: -3},
		{CommenceTime: kickoff, Name: "C", Point: -3},
		{CommenceTime: kickoff, Name: "A", Point: -3},
		{CommenceTime: kickoff, Name: "D", Point: 3},
	}

	ranked, err := spreads.Rank(rows)
	require.NoError(t, err)

	var names []string
	for _, row := range ranked {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"A", "C", "B", "D"}, names)
}

func TestRank_OddRowCount(t *testing.T) {
	rows := []models.AggregatedRow{
		{CommenceTime: kickoff, Name: "A", Point: -3},
		{CommenceTime: kickoff, Name: "B", Point: 3},
		{CommenceTime: kickoff, Name: "C", Point: 1},
	}

	ranked, err := spreads.Rank(rows)
	assert.Nil(t, ranked)
	assert.True(t, errors.Is(err, spreads.ErrOddRowCount))
}

func TestRank_Empty(t *testing.T) {
	ranked, err := spreads.Rank(nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func BenchmarkAggregate(b *testing.B) {
	rows := make([]models.TeamRow, 0, 32*8)
	for game := 0; game < 16; game++ {
		commence := kickoff.Add(time.Duration(game) * time.Hour)
		for book := 0; book < 8; book++ {
			rows = append(rows,
				testutil.NewTestRow(commence, fmt.Sprintf("Home %d", game), -3.5, 1.91),
				testutil.NewTestRow(commence, fmt.Sprintf("Away %d", game), 3.5, 1.91))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		spreads.Aggregate(rows)
	}
}
