package models

import "time"

// TaskInstance is one concrete occurrence of an assignment on a date.
// At most one instance exists per (assignment_id, due_date); the table
// carries a unique index on that pair.
type TaskInstance struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignment_id"`
	DueDate      time.Time `json:"due_date"`
	Completed    bool      `json:"completed"`

	// reward snapshot, written once when the instance is completed
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	ExpEarned          int        `json:"exp_earned"`
	AreaHealthRestored int        `json:"area_health_restored"`
	UsedTools          []string   `json:"used_tools"`

	CreatedAt time.Time `json:"created_at"`
}

// GenerationError reports a single failed assignment inside a batch run.
type GenerationError struct {
	AssignmentID int64  `json:"assignment_id"`
	Message      string `json:"message"`
}

// GenerationResult is the partial-success outcome of a batch generation.
// A failed assignment never aborts the rest of the batch.
type GenerationResult struct {
	Created []TaskInstance    `json:"created"`
	Skipped []int64           `json:"skipped"`
	Errors  []GenerationError `json:"errors"`
}
