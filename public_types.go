package twelveweeks

import "github.com/nkgevorgyan/twelveweeks/internal/types"

// Public type aliases so consumers only import the root package.
type (
	// Domain entities
	UserProfile      = types.UserProfile
	Goal             = types.Goal
	ProgressLogEntry = types.ProgressLogEntry
	Event            = types.Event

	// Requests
	RegisterRequest      = types.RegisterRequest
	UpdateProfileRequest = types.UpdateProfileRequest
	CreateGoalRequest    = types.CreateGoalRequest

	// Responses
	AuthToken        = types.AuthToken
	GoalWithProgress = types.GoalWithProgress
)

// Sentinel errors and predicates live in errors.go.
