package twelveweeks

import (
	"errors"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/goalqueue"
)

// Sentinel errors surfaced by the core. All are wrapped in classified errors,
// so both errors.Is against a sentinel and the kind predicates below work.
var (
	// ErrEmptyBaseURL is returned by New when no backend URL is given.
	ErrEmptyBaseURL = errors.New("baseURL cannot be empty")

	// ErrNotAuthenticated is returned when an operation requires a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionBusy is returned when a login, register, or restore is
	// attempted while another one is still in flight.
	ErrSessionBusy = errors.New("session operation already in flight")

	// ErrAlreadyAuthenticated is returned by Login/Register on a live session.
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	// ErrCheckInInFlight is returned when a goal already has a pending
	// submission; the second check-in is rejected, never queued.
	ErrCheckInInFlight = errors.New("check-in already in flight for this goal")

	// ErrGoalNotFound is returned when a goal id is absent from the snapshot.
	ErrGoalNotFound = errors.New("goal not in local snapshot")

	// ErrInvalidCheckInValue rejects zero or negative progress values before
	// any network call.
	ErrInvalidCheckInValue = errors.New("check-in value must be positive")

	// ErrPostRegisterLogin marks the ambiguous partial success where the user
	// account was created but the follow-up login failed.
	ErrPostRegisterLogin = errors.New("account created but login failed")
)

// ErrBackPressure is returned when the internal goal queue is full.
var ErrBackPressure = goalqueue.ErrQueueFull

// IsAuthError reports whether err is an invalid-credential or invalid-token
// failure. Such failures have already cleared the session.
func IsAuthError(err error) bool { return apierrors.Is(err, apierrors.KindAuth) }

// IsValidationError reports whether err is a rejected-input failure (local
// or server-side) that mutated no state.
func IsValidationError(err error) bool { return apierrors.Is(err, apierrors.KindValidation) }

// IsConflict reports whether err is a duplicate in-flight operation rejection.
func IsConflict(err error) bool { return apierrors.Is(err, apierrors.KindConflict) }

// IsNotFound reports whether err addressed a missing resource.
func IsNotFound(err error) bool { return apierrors.Is(err, apierrors.KindNotFound) }

// IsRemoteFailure reports whether err is a network, transport, or server
// failure; the triggering operation rolled back.
func IsRemoteFailure(err error) bool { return apierrors.KindOf(err) == apierrors.KindRemote }
