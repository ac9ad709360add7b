package twelveweeks

import (
	"fmt"
	"time"
)

// This file is the read side of the core: pure transformations of the goal
// and event snapshots into display-ready values. Nothing here mutates state
// or performs I/O, so every function is safe to call repeatedly and
// speculatively.

// DefaultTrendWindowDays is the trailing window for the weekly trend chart.
const DefaultTrendWindowDays = 7

// DailyMetricPoint is one day of the trend series. Values holds an entry for
// every goal in the input, zero when nothing was logged that day, so chart
// rendering never needs null handling.
type DailyMetricPoint struct {
	Date   time.Time
	Values map[int]float64
}

// DailySeries buckets progress-log values into windowDays consecutive local
// calendar days ending on now's date. The bucket boundary is midnight in
// loc, not a fixed 24h offset. Completion days carry their logged entries
// verbatim; no synthetic burst is injected.
func DailySeries(goals []Goal, logs map[int][]ProgressLogEntry, windowDays int, now time.Time, loc *time.Location) []DailyMetricPoint {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}
	end := midnight(now, loc)

	series := make([]DailyMetricPoint, windowDays)
	for i := 0; i < windowDays; i++ {
		day := end.AddDate(0, 0, i-windowDays+1)
		values := make(map[int]float64, len(goals))
		for _, goal := range goals {
			values[goal.ID] = 0
		}
		series[i] = DailyMetricPoint{Date: day, Values: values}
	}

	for _, goal := range goals {
		for _, entry := range logs[goal.ID] {
			day := midnight(entry.LoggedAt, loc)
			offset := daysBetween(series[0].Date, day)
			if offset < 0 || offset >= windowDays {
				continue
			}
			series[offset].Values[goal.ID] += entry.Value
		}
	}
	return series
}

// DailySeries runs the trend aggregation over the current snapshot with the
// client's clock and timezone.
func (c *Client) DailySeries(windowDays int) []DailyMetricPoint {
	return DailySeries(c.goals.snapshot(), c.goals.allLogs(), windowDays, c.now(), c.loc)
}

// DeadlineSummary condenses the upcoming-deadline list for a dashboard card.
type DeadlineSummary struct {
	Count   int
	Nearest *time.Time
}

// String renders the summary: "none", the single date, or a count with the
// nearest date.
func (s DeadlineSummary) String() string {
	switch {
	case s.Count == 0:
		return "none"
	case s.Count == 1:
		return s.Nearest.Format("Mon, Jan 2")
	default:
		return fmt.Sprintf("%d deadlines, nearest %s", s.Count, s.Nearest.Format("Mon, Jan 2"))
	}
}

// deadlineLookaheadDays is the window the dashboard deadline card covers.
const deadlineLookaheadDays = 3

// NextDeadlineSummary summarizes the goals due within the next three
// calendar days. Goals sharing a date keep their snapshot order; the
// nearest is the first after the stable sort.
func NextDeadlineSummary(goals []Goal, now time.Time, loc *time.Location) DeadlineSummary {
	due := upcomingDeadlines(goals, deadlineLookaheadDays, now, loc)
	if len(due) == 0 {
		return DeadlineSummary{}
	}
	nearest := *due[0].TargetDate
	return DeadlineSummary{Count: len(due), Nearest: &nearest}
}

// NextDeadlineSummary summarizes the current snapshot's upcoming deadlines.
func (c *Client) NextDeadlineSummary() DeadlineSummary {
	return NextDeadlineSummary(c.goals.snapshot(), c.now(), c.loc)
}

// EventSummary reports the next upcoming event, if any.
type EventSummary struct {
	Next *Event
}

// String renders the next event's start, or the no-upcoming sentinel text.
func (s EventSummary) String() string {
	if s.Next == nil {
		return "no upcoming events"
	}
	return s.Next.StartTime.Format("Mon, Jan 2 3:04 PM")
}

// NextEventSummary selects the event with the earliest start time at or
// after now. Past events are excluded; an empty or all-past input yields the
// explicit no-upcoming sentinel, never an error.
func NextEventSummary(events []Event, now time.Time) EventSummary {
	var next *Event
	for i := range events {
		ev := &events[i]
		if ev.StartTime.Before(now) {
			continue
		}
		if next == nil || ev.StartTime.Before(next.StartTime) {
			next = ev
		}
	}
	if next == nil {
		return EventSummary{}
	}
	cp := *next
	return EventSummary{Next: &cp}
}

// NextEventSummary summarizes the given events against the client's clock.
func (c *Client) NextEventSummary(events []Event) EventSummary {
	return NextEventSummary(events, c.now())
}

// StreakSummary carries the server-computed streak counters; the client
// never derives these locally.
type StreakSummary struct {
	Current int
	Longest int
}

// Streaks reads the streak counters from the logged-in profile. Zero values
// are returned when no session exists.
func (c *Client) Streaks() StreakSummary {
	user := c.session.currentUser()
	if user == nil {
		return StreakSummary{}
	}
	return StreakSummary{Current: user.CurrentStreak, Longest: user.LongestStreak}
}
