package types

// ------------------------------
// Response Types
// ------------------------------

// AuthToken is the payload returned by the authenticate endpoint.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// GoalWithProgress is a goal together with its full progress-log history.
type GoalWithProgress struct {
	Goal
	ProgressLogs []ProgressLogEntry `json:"progress_logs"`
}
