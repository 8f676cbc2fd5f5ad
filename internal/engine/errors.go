package engine

import "errors"

var (
	// ErrNotFound covers missing instances, templates and profiles. A
	// missing profile is a data-integrity fault, never auto-repaired here.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyCompleted is the concurrency guard: of two simultaneous
	// completions exactly one wins, the other gets this.
	ErrAlreadyCompleted = errors.New("task instance already completed")

	// ErrNotOwner means the instance belongs to a different user.
	ErrNotOwner = errors.New("task instance not owned by caller")
)
