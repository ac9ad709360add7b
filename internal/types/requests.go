package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds the fields for user creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// UpdateProfileRequest carries a partial profile update; nil fields are
// omitted so the backend leaves them unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// CreateGoalRequest holds the fields for a new goal.
type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	IsRecurring bool       `json:"is_recurring"`
	Frequency   string     `json:"frequency,omitempty"`
	TeamID      *int       `json:"team_id,omitempty"`
}

// LogProgressRequest is the body of a check-in submission.
type LogProgressRequest struct {
	GoalID int     `json:"goal_id"`
	Value  float64 `json:"value"`
	Notes  string  `json:"notes,omitempty"`
}
