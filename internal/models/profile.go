package models

import "time"

// UserProfile holds the gamification state for one user. Numeric fields are
// mutated only by the completion reward path.
type UserProfile struct {
	ID                  int64 `json:"id"`
	UserID              int64 `json:"user_id"`
	Level               int   `json:"level"`
	Experience          int   `json:"experience"`
	Coins               int   `json:"coins"`
	Gems                int   `json:"gems"`
	TotalTasksCompleted int   `json:"total_tasks_completed"`

	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	LastCompletedOn *time.Time `json:"last_completed_on,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
