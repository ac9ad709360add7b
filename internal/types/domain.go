package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// UserProfile is the authenticated user's identity record. The streak
// counters are computed by the backend; the client treats them as opaque.
type UserProfile struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	FullName      string `json:"full_name,omitempty"`
	IsActive      bool   `json:"is_active"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Avatar        string `json:"avatar,omitempty"`
}

// Goal represents one tracked goal, personal or team-scoped.
type Goal struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	UserID       int        `json:"user_id"`
	TeamID       *int       `json:"team_id,omitempty"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	CreatedAt    time.Time  `json:"created_at"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	IsCompleted  bool       `json:"is_completed"`
	IsRecurring  bool       `json:"is_recurring"`
	Frequency    string     `json:"frequency,omitempty"`
}

// ProgressLogEntry is one recorded check-in for a goal. Entries are
// append-only; the backend assigns ID and LoggedAt.
type ProgressLogEntry struct {
	ID       int       `json:"id"`
	GoalID   int       `json:"goal_id"`
	Value    float64   `json:"value"`
	Notes    string    `json:"notes,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Event is a scheduled call or meeting visible to the user.
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	OrganizerID int       `json:"organizer_id"`
	TeamID      *int      `json:"team_id,omitempty"`
	EventType   string    `json:"event_type"`
	Location    string    `json:"location,omitempty"`
	MeetingLink string    `json:"meeting_link,omitempty"`
}
