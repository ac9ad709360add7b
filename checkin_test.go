package twelveweeks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
)

// checkInFixture wires a client with one active goal (8 of 30 miles) loaded.
func checkInFixture(t *testing.T, progress http.HandlerFunc) *Client {
	t.Helper()
	goals := []Goal{{ID: 1, Title: "Run", TargetValue: 30, CurrentValue: 8, Unit: "miles"}}
	logs := map[int][]ProgressLogEntry{1: {{ID: 10, GoalID: 1, Value: 8}}}

	mux := http.NewServeMux()
	goalHandlers(t, mux, goals, logs)
	mux.HandleFunc("POST /goals/1/progress", progress)
	c, _ := newLoggedInClient(t, mux)
	require.NoError(t, c.LoadGoals(context.Background()))
	return c
}

func TestSubmitCheckIn_Commit(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value float64 `json:"value"`
			Notes string  `json:"notes"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(ProgressLogEntry{ID: 11, GoalID: 1, Value: req.Value, Notes: req.Notes, LoggedAt: testNow})
	})

	res, err := c.SubmitCheckIn(context.Background(), 1, 2.5, "evening run")
	require.NoError(t, err)
	assert.Equal(t, 10.5, res.Goal.CurrentValue)
	assert.False(t, res.Goal.IsCompleted)
	assert.Equal(t, 2.5, res.Entry.Value)

	entries := c.ProgressLog(1)
	require.Len(t, entries, 2)
	assert.Equal(t, "evening run", entries[1].Notes)
	assert.False(t, c.CheckInPending(1))
}

func TestSubmitCheckIn_CompletesGoal(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ProgressLogEntry{ID: 11, GoalID: 1, Value: 22, LoggedAt: testNow})
	})

	res, err := c.SubmitCheckIn(context.Background(), 1, 22, "")
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.Goal.CurrentValue)
	assert.True(t, res.Goal.IsCompleted)
	require.NotNil(t, res.Goal.CompletedAt)
	assert.Equal(t, testNow, *res.Goal.CompletedAt)
	assert.Equal(t, 1, c.CompletedGoalCount())
}

func TestSubmitCheckIn_ServerErrorRollsBack(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"db unavailable"}`, http.StatusInternalServerError)
	})
	before := c.Goals()
	beforeLog := c.ProgressLog(1)

	_, err := c.SubmitCheckIn(context.Background(), 1, 2.5, "")
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindRemote))

	assert.Equal(t, before, c.Goals())
	assert.Equal(t, beforeLog, c.ProgressLog(1))
	assert.False(t, c.CheckInPending(1))
	assert.Equal(t, StatusAuthenticated, c.SessionStatus())
}

func TestSubmitCheckIn_RejectsNonPositiveValue(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an invalid value")
	})

	for _, v := range []float64{0, -1} {
		_, err := c.SubmitCheckIn(context.Background(), 1, v, "")
		require.ErrorIs(t, err, ErrInvalidCheckInValue)
		assert.True(t, apierrors.Is(err, apierrors.KindValidation))
	}
}

func TestSubmitCheckIn_UnknownGoal(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an unknown goal")
	})

	_, err := c.SubmitCheckIn(context.Background(), 99, 1, "")
	require.ErrorIs(t, err, ErrGoalNotFound)
	assert.True(t, apierrors.Is(err, apierrors.KindNotFound))
}

func TestSubmitCheckIn_DuplicateInFlightRejected(t *testing.T) {
	t.Parallel()
	arrived := make(chan struct{})
	release := make(chan struct{})
	var posts int32
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&posts, 1) == 1 {
			close(arrived)
			<-release
		}
		_ = json.NewEncoder(w).Encode(ProgressLogEntry{ID: 11, GoalID: 1, Value: 2.5, LoggedAt: testNow})
	})

	type result struct {
		res *CheckInResult
		err error
	}
	first := make(chan result, 1)
	go func() {
		res, err := c.SubmitCheckIn(context.Background(), 1, 2.5, "")
		first <- result{res, err}
	}()
	<-arrived
	require.True(t, c.CheckInPending(1))

	// Second submission for the same goal conflicts instead of queuing.
	_, err := c.SubmitCheckIn(context.Background(), 1, 1, "")
	require.ErrorIs(t, err, ErrCheckInInFlight)
	assert.True(t, apierrors.Is(err, apierrors.KindConflict))

	close(release)
	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, 10.5, got.res.Goal.CurrentValue)
	assert.Equal(t, int32(1), atomic.LoadInt32(&posts))
}

func TestSubmitCheckIn_AuthFailureInvalidatesSession(t *testing.T) {
	t.Parallel()
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
	})

	_, err := c.SubmitCheckIn(context.Background(), 1, 2.5, "")
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindAuth))
	assert.Equal(t, StatusUnauthenticated, c.SessionStatus())

	// The snapshot rolled back before the session went away.
	goals := c.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, 8.0, goals[0].CurrentValue)
}

func TestSubmitCheckIn_ContextCancelledRollsBack(t *testing.T) {
	t.Parallel()
	arrived := make(chan struct{})
	c := checkInFixture(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		// Stall until the client's context deadline fires.
		time.Sleep(2 * time.Second)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitCheckIn(ctx, 1, 2.5, "")
		done <- err
	}()
	<-arrived
	cancel()

	err := <-done
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || apierrors.Is(err, apierrors.KindRemote))
	assert.False(t, c.CheckInPending(1))
	goals := c.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, 8.0, goals[0].CurrentValue)
}
