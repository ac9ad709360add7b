package twelveweeks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nkgevorgyan/twelveweeks/internal/api"
	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/goalqueue"
	"github.com/nkgevorgyan/twelveweeks/internal/types"
)

// CheckInResult reports a committed check-in: the reconciled goal and the
// log entry the server persisted.
type CheckInResult struct {
	Goal  Goal
	Entry ProgressLogEntry
}

// SubmitCheckIn turns one check-in into a consistent goal state with a
// three-phase protocol: snapshot, attempt, commit-or-rollback.
//
// The goal is marked submitting for the duration (visible via
// CheckInPending); a second check-in for the same goal is rejected with a
// conflict rather than queued. Check-ins for different goals may be in
// flight concurrently. On any failure the goal is left exactly as it was.
func (c *Client) SubmitCheckIn(ctx context.Context, goalID int, value float64, notes string) (*CheckInResult, error) {
	if value <= 0 {
		checkinsTotal.WithLabelValues("rejected").Inc()
		return nil, apierrors.New(apierrors.KindValidation, ErrInvalidCheckInValue)
	}
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	// Guard check and snapshot happen in one critical section, so two racing
	// submissions for the same goal cannot both capture a snapshot.
	if err := c.goals.beginCheckIn(goalID, value); err != nil {
		checkinsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	type outcome struct {
		entry *types.ProgressLogEntry
		err   error
	}
	res := make(chan outcome, 1)

	job := goalqueue.JobFunc(func(jobCtx context.Context) error {
		entry, err := api.LogProgress(jobCtx, c.http, c.baseURL, goalID, types.LogProgressRequest{
			GoalID: goalID,
			Value:  value,
			Notes:  notes,
		})
		res <- outcome{entry: entry, err: err}
		// The error goes to the waiting caller, never to the executor: a
		// failed mutation must not re-enter the retry loop.
		return nil
	})

	if err := c.exec.Submit(ctx, goalID, job); err != nil {
		c.goals.rollbackCheckIn(goalID)
		checkinsTotal.WithLabelValues("rolled_back").Inc()
		return nil, err
	}

	var out outcome
	select {
	case out = <-res:
	case <-ctx.Done():
		// The HTTP request shares ctx, so the in-flight attempt fails too.
		c.goals.rollbackCheckIn(goalID)
		checkinsTotal.WithLabelValues("rolled_back").Inc()
		return nil, ctx.Err()
	}

	if out.err != nil {
		c.goals.rollbackCheckIn(goalID)
		c.session.invalidateOnAuthError(ctx, out.err)
		checkinsTotal.WithLabelValues("rolled_back").Inc()
		log.Warn().Err(out.err).Int("goal", goalID).Msg("check-in rolled back")
		return nil, out.err
	}

	goal := c.goals.commitCheckIn(goalID, *out.entry, c.now())
	checkinsTotal.WithLabelValues("committed").Inc()
	log.Debug().
		Int("goal", goalID).
		Float64("value", value).
		Float64("current", goal.CurrentValue).
		Bool("completed", goal.IsCompleted).
		Msg("check-in committed")
	return &CheckInResult{Goal: goal, Entry: *out.entry}, nil
}

// CheckInPending reports whether a submission for the goal is in flight.
func (c *Client) CheckInPending(goalID int) bool {
	c.goals.mu.RLock()
	defer c.goals.mu.RUnlock()
	_, ok := c.goals.submitting[goalID]
	return ok
}

// beginCheckIn validates the target goal, rejects a duplicate in-flight
// submission, and records the pre-submission snapshot.
func (g *goalStore) beginCheckIn(goalID int, value float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := -1
	for i := range g.goals {
		if g.goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apierrors.New(apierrors.KindNotFound, ErrGoalNotFound)
	}
	if _, inFlight := g.submitting[goalID]; inFlight {
		return apierrors.New(apierrors.KindConflict, ErrCheckInInFlight)
	}

	goal := g.goals[idx]
	g.submitting[goalID] = pendingCheckIn{
		value:         value,
		prevValue:     goal.CurrentValue,
		prevCompleted: goal.IsCompleted,
		prevDoneAt:    goal.CompletedAt,
	}
	return nil
}

// commitCheckIn applies the reconciled values from the snapshot: the new
// current value is snapshot + submitted, and completion is re-derived from
// the target rather than trusted from either side.
func (g *goalStore) commitCheckIn(goalID int, entry ProgressLogEntry, now time.Time) Goal {
	g.mu.Lock()
	defer g.mu.Unlock()

	pending := g.submitting[goalID]
	delete(g.submitting, goalID)

	for i := range g.goals {
		if g.goals[i].ID != goalID {
			continue
		}
		goal := &g.goals[i]
		goal.CurrentValue = pending.prevValue + pending.value
		goal.IsCompleted = goal.CurrentValue >= goal.TargetValue
		if goal.IsCompleted && !pending.prevCompleted {
			done := now
			goal.CompletedAt = &done
		}
		g.logs[goalID] = append(g.logs[goalID], entry)
		return *goal
	}
	return Goal{}
}

// rollbackCheckIn discards the submitting flag and writes the snapshot
// values back. Nothing numeric changes before commit, so the restore writes
// identical values.
func (g *goalStore) rollbackCheckIn(goalID int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pending, ok := g.submitting[goalID]
	if !ok {
		return
	}
	delete(g.submitting, goalID)

	for i := range g.goals {
		if g.goals[i].ID != goalID {
			continue
		}
		g.goals[i].CurrentValue = pending.prevValue
		g.goals[i].IsCompleted = pending.prevCompleted
		g.goals[i].CompletedAt = pending.prevDoneAt
		return
	}
}
