package twelveweeks

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySeries_DenseWindow(t *testing.T) {
	t.Parallel()
	goals := []Goal{{ID: 1, Title: "Run"}, {ID: 2, Title: "Read"}}
	logs := map[int][]ProgressLogEntry{
		1: {
			{ID: 1, GoalID: 1, Value: 3, LoggedAt: testNow.AddDate(0, 0, -6).Add(8 * time.Hour)},
			{ID: 2, GoalID: 1, Value: 2, LoggedAt: testNow.AddDate(0, 0, -6)},
			{ID: 3, GoalID: 1, Value: 4, LoggedAt: testNow},
			// Outside the window: ignored.
			{ID: 4, GoalID: 1, Value: 99, LoggedAt: testNow.AddDate(0, 0, -7)},
		},
		2: {
			{ID: 5, GoalID: 2, Value: 1, LoggedAt: testNow.AddDate(0, 0, -3)},
		},
	}

	series := DailySeries(goals, logs, 7, testNow, time.UTC)
	require.Len(t, series, 7)

	// Every day carries a value for every goal, zero-filled.
	for _, point := range series {
		require.Len(t, point.Values, 2)
	}

	// Days are consecutive local midnights ending on now's date.
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
	}
	assert.Equal(t, midnight(testNow, time.UTC), series[6].Date)

	// Same-day entries sum into one bucket.
	assert.Equal(t, 5.0, series[0].Values[1])
	assert.Equal(t, 4.0, series[6].Values[1])
	assert.Equal(t, 1.0, series[3].Values[2])
	assert.Equal(t, 0.0, series[3].Values[1])

	// Window totals match the in-window log totals.
	var total float64
	for _, point := range series {
		total += point.Values[1]
	}
	assert.Equal(t, 9.0, total)
}

func TestDailySeries_DaylightSavingBoundary(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 2026-03-08 springs forward, so the window contains a 23h day; entries
	// must still land in their own local calendar day.
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, loc)
	goals := []Goal{{ID: 1, Title: "Run"}}
	logs := map[int][]ProgressLogEntry{
		1: {
			{ID: 1, GoalID: 1, Value: 5, LoggedAt: time.Date(2026, 3, 9, 8, 0, 0, 0, loc)},
			{ID: 2, GoalID: 1, Value: 2, LoggedAt: time.Date(2026, 3, 8, 9, 0, 0, 0, loc)},
		},
	}

	series := DailySeries(goals, logs, 7, now, loc)
	require.Len(t, series, 7)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), series[6].Date)
	assert.Equal(t, 5.0, series[6].Values[1])
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, loc), series[5].Date)
	assert.Equal(t, 2.0, series[5].Values[1])
}

func TestDailySeries_DefaultWindow(t *testing.T) {
	t.Parallel()
	series := DailySeries(nil, nil, 0, testNow, time.UTC)
	assert.Len(t, series, DefaultTrendWindowDays)
}

func TestNextDeadlineSummary(t *testing.T) {
	t.Parallel()
	day := func(offset int) *time.Time {
		d := testNow.AddDate(0, 0, offset)
		return &d
	}

	t.Run("none", func(t *testing.T) {
		s := NextDeadlineSummary(nil, testNow, time.UTC)
		assert.Equal(t, 0, s.Count)
		assert.Equal(t, "none", s.String())
	})

	t.Run("single", func(t *testing.T) {
		goals := []Goal{{ID: 1, TargetDate: day(1)}}
		s := NextDeadlineSummary(goals, testNow, time.UTC)
		require.Equal(t, 1, s.Count)
		assert.Equal(t, day(1).Format("Mon, Jan 2"), s.String())
	})

	t.Run("many", func(t *testing.T) {
		goals := []Goal{
			{ID: 1, TargetDate: day(2)},
			{ID: 2, TargetDate: day(1)},
			{ID: 3, TargetDate: day(30)}, // outside the lookahead
		}
		s := NextDeadlineSummary(goals, testNow, time.UTC)
		require.Equal(t, 2, s.Count)
		assert.True(t, s.Nearest.Equal(*day(1)))
	})

	t.Run("tie keeps snapshot order", func(t *testing.T) {
		shared := day(1)
		goals := []Goal{
			{ID: 7, TargetDate: shared},
			{ID: 3, TargetDate: shared},
		}
		s := NextDeadlineSummary(goals, testNow, time.UTC)
		require.Equal(t, 2, s.Count)
		assert.True(t, s.Nearest.Equal(*shared))
	})
}

func TestNextEventSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		s := NextEventSummary(nil, testNow)
		assert.Nil(t, s.Next)
		assert.Equal(t, "no upcoming events", s.String())
	})

	t.Run("all past", func(t *testing.T) {
		events := []Event{{ID: 1, StartTime: testNow.Add(-time.Hour)}}
		s := NextEventSummary(events, testNow)
		assert.Nil(t, s.Next)
	})

	t.Run("earliest upcoming wins", func(t *testing.T) {
		events := []Event{
			{ID: 1, StartTime: testNow.Add(48 * time.Hour)},
			{ID: 2, StartTime: testNow.Add(2 * time.Hour)},
			{ID: 3, StartTime: testNow.Add(-time.Hour)},
		}
		s := NextEventSummary(events, testNow)
		require.NotNil(t, s.Next)
		assert.Equal(t, 2, s.Next.ID)
	})

	t.Run("event starting now is upcoming", func(t *testing.T) {
		events := []Event{{ID: 1, StartTime: testNow}}
		s := NextEventSummary(events, testNow)
		require.NotNil(t, s.Next)
		assert.Equal(t, 1, s.Next.ID)
	})
}

func TestStreaks(t *testing.T) {
	t.Parallel()
	c, _ := newLoggedInClient(t, http.NewServeMux())

	s := c.Streaks()
	assert.Equal(t, 4, s.Current)
	assert.Equal(t, 9, s.Longest)
}

func TestStreaks_NoSession(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.NewServeMux())

	assert.Equal(t, StreakSummary{}, c.Streaks())
}
