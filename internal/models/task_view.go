package models

import "time"

// LegacyTask is a flat one-off task from before templates existed. Kept
// read-only so old rows still show up in daily lists.
type LegacyTask struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Category  Category   `json:"category"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskViewKind tags the origin of a TaskView.
type TaskViewKind string

const (
	ViewLegacy    TaskViewKind = "legacy"
	ViewTemplated TaskViewKind = "templated"
)

// TaskView is the uniform read projection over legacy tasks and templated
// instances. Resolved once at the handler boundary; downstream consumers
// never branch on the underlying representation.
type TaskView struct {
	Kind       TaskViewKind `json:"kind"`
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Category   Category     `json:"category"`
	DueDate    *time.Time   `json:"due_date,omitempty"`
	Completed  bool         `json:"completed"`
	ExpReward  int          `json:"exp_reward,omitempty"`
	Importance int          `json:"importance,omitempty"`
}

// ViewFromLegacy projects a legacy flat task.
func ViewFromLegacy(t *LegacyTask) TaskView {
	return TaskView{
		Kind:      ViewLegacy,
		ID:        t.ID,
		Title:     t.Title,
		Category:  t.Category,
		DueDate:   t.DueDate,
		Completed: t.Completed,
	}
}

// ViewFromInstance projects a templated instance with its assignment and
// template resolved.
func ViewFromInstance(inst *TaskInstance, a *UserTaskAssignment, tpl *TaskTemplate) TaskView {
	due := inst.DueDate
	return TaskView{
		Kind:       ViewTemplated,
		ID:         inst.ID,
		Title:      a.DisplayName(tpl),
		Category:   tpl.Category,
		DueDate:    &due,
		Completed:  inst.Completed,
		ExpReward:  tpl.ExpReward,
		Importance: tpl.Importance,
	}
}
