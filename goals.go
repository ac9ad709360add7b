package twelveweeks

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nkgevorgyan/twelveweeks/internal/api"
	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
)

// pendingCheckIn snapshots the part of a goal a check-in may change, so a
// failed submission can be rolled back byte-identically.
type pendingCheckIn struct {
	value         float64
	prevValue     float64
	prevCompleted bool
	prevDoneAt    *time.Time
}

// goalStore holds the authoritative local snapshot of goals and their
// progress-log history for the active session. Readers always see either the
// previous snapshot or the new one, never a partial collection.
type goalStore struct {
	mu         sync.RWMutex
	goals      []Goal
	logs       map[int][]ProgressLogEntry
	submitting map[int]pendingCheckIn
}

func newGoalStore() *goalStore {
	return &goalStore{
		logs:       make(map[int][]ProgressLogEntry),
		submitting: make(map[int]pendingCheckIn),
	}
}

// replace swaps in a fresh snapshot. In-flight check-in guards survive the
// swap so a pending submission cannot be double-started by a reload.
func (g *goalStore) replace(goals []Goal, logs map[int][]ProgressLogEntry) {
	g.mu.Lock()
	g.goals = goals
	g.logs = logs
	g.mu.Unlock()
}

func (g *goalStore) reset() {
	g.mu.Lock()
	g.goals = nil
	g.logs = make(map[int][]ProgressLogEntry)
	g.submitting = make(map[int]pendingCheckIn)
	g.mu.Unlock()
}

func (g *goalStore) snapshot() []Goal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Goal, len(g.goals))
	copy(out, g.goals)
	return out
}

func (g *goalStore) progressLog(goalID int) []ProgressLogEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	entries := g.logs[goalID]
	out := make([]ProgressLogEntry, len(entries))
	copy(out, entries)
	return out
}

func (g *goalStore) allLogs() map[int][]ProgressLogEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[int][]ProgressLogEntry, len(g.logs))
	for id, entries := range g.logs {
		cp := make([]ProgressLogEntry, len(entries))
		copy(cp, entries)
		out[id] = cp
	}
	return out
}

func (g *goalStore) counts() (active, completed int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, goal := range g.goals {
		if goal.IsCompleted {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

func (g *goalStore) add(goal Goal) {
	g.mu.Lock()
	g.goals = append(g.goals, goal)
	g.mu.Unlock()
}

// update splices a freshly fetched goal and its history into the snapshot.
// An unknown id is appended, so a goal created elsewhere shows up too.
func (g *goalStore) update(goal Goal, entries []ProgressLogEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	replaced := false
	for i := range g.goals {
		if g.goals[i].ID == goal.ID {
			g.goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		g.goals = append(g.goals, goal)
	}
	g.logs[goal.ID] = entries
}

func (g *goalStore) remove(goalID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	kept := g.goals[:0]
	for _, goal := range g.goals {
		if goal.ID != goalID {
			kept = append(kept, goal)
		}
	}
	g.goals = kept
	delete(g.logs, goalID)
	delete(g.submitting, goalID)
}

// --------------------------------------------------------------------
// Goal operations - public surface
// --------------------------------------------------------------------

// requireAuth gates data operations on a live session.
func (c *Client) requireAuth() error {
	if c.session.currentStatus() != StatusAuthenticated {
		return apierrors.New(apierrors.KindAuth, ErrNotAuthenticated)
	}
	return nil
}

// LoadGoals fetches the full goal collection and each goal's progress-log
// history, then replaces the local snapshot atomically. If another load or
// mutation is in flight, the later completion wins.
func (c *Client) LoadGoals(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	goals, err := api.ListGoals(ctx, c.http, c.baseURL)
	if err != nil {
		c.session.invalidateOnAuthError(ctx, err)
		return err
	}
	logs := make(map[int][]ProgressLogEntry, len(goals))
	for _, goal := range goals {
		entries, err := api.ListProgress(ctx, c.http, c.baseURL, goal.ID)
		if err != nil {
			c.session.invalidateOnAuthError(ctx, err)
			return err
		}
		logs[goal.ID] = entries
	}
	c.goals.replace(goals, logs)
	log.Debug().Int("goals", len(goals)).Msg("goal snapshot loaded")
	return nil
}

// RefreshGoal re-fetches one goal and its history and splices them into the
// snapshot, leaving the other goals untouched. Useful after an out-of-band
// change when a full reload is too heavy.
func (c *Client) RefreshGoal(ctx context.Context, goalID int) (*Goal, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	gwp, err := api.GetGoal(ctx, c.http, c.baseURL, goalID)
	if err != nil {
		c.session.invalidateOnAuthError(ctx, err)
		return nil, err
	}
	c.goals.update(gwp.Goal, gwp.ProgressLogs)
	return &gwp.Goal, nil
}

// Goals returns a copy of the current goal snapshot.
func (c *Client) Goals() []Goal {
	return c.goals.snapshot()
}

// ProgressLog returns a copy of the log history for one goal.
func (c *Client) ProgressLog(goalID int) []ProgressLogEntry {
	return c.goals.progressLog(goalID)
}

// ActiveGoalCount counts goals not yet completed.
func (c *Client) ActiveGoalCount() int {
	active, _ := c.goals.counts()
	return active
}

// CompletedGoalCount counts completed goals.
func (c *Client) CompletedGoalCount() int {
	_, completed := c.goals.counts()
	return completed
}

// UpcomingDeadlines returns active goals whose target date falls within the
// next withinDays calendar days, ascending by date. Goals without a target
// date are excluded.
func (c *Client) UpcomingDeadlines(withinDays int) []Goal {
	return upcomingDeadlines(c.goals.snapshot(), withinDays, c.now(), c.loc)
}

// CreateGoal creates the goal remotely and, on success, appends the server's
// record to the local snapshot. On failure the snapshot is unchanged.
func (c *Client) CreateGoal(ctx context.Context, req CreateGoalRequest) (*Goal, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	goal, err := api.CreateGoal(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.session.invalidateOnAuthError(ctx, err)
		return nil, err
	}
	c.goals.add(*goal)
	return goal, nil
}

// DeleteGoal deletes the goal remotely and, on success, removes it and its
// history from the local snapshot.
func (c *Client) DeleteGoal(ctx context.Context, goalID int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := api.DeleteGoal(ctx, c.http, c.baseURL, goalID); err != nil {
		c.session.invalidateOnAuthError(ctx, err)
		return err
	}
	c.goals.remove(goalID)
	return nil
}

// ListEvents fetches the event collection for the current user. Events are
// not cached; the summary helpers take the returned slice.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	events, err := api.ListEvents(ctx, c.http, c.baseURL)
	if err != nil {
		c.session.invalidateOnAuthError(ctx, err)
		return nil, err
	}
	return events, nil
}

// upcomingDeadlines filters and stable-sorts goals by target date. Days are
// counted as local calendar days, not 24h offsets.
func upcomingDeadlines(goals []Goal, withinDays int, now time.Time, loc *time.Location) []Goal {
	var out []Goal
	for _, goal := range goals {
		if goal.IsCompleted || goal.TargetDate == nil {
			continue
		}
		d := calendarDaysUntil(now, *goal.TargetDate, loc)
		if d >= 0 && d <= withinDays {
			out = append(out, goal)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TargetDate.Before(*out[j].TargetDate)
	})
	return out
}

// calendarDaysUntil counts whole calendar days from now's date to target's
// date in loc; 0 means today, negative means past.
func calendarDaysUntil(now, target time.Time, loc *time.Location) int {
	return daysBetween(midnight(now, loc), midnight(target, loc))
}

// daysBetween counts calendar days from midnight a to midnight b in the same
// location. A day spanning a DST transition is 23h or 25h, so the quotient is
// rounded rather than truncated.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

func midnight(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
