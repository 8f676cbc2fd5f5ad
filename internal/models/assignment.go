package models

import "time"

// UserTaskAssignment binds a user to a TaskTemplate. Deactivated instead of
// deleted so completion history keeps its references.
type UserTaskAssignment struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"user_id"`
	TemplateID int64 `json:"template_id"`

	// per-user overrides; nil means "use the template's value"
	NameOverride        *string `json:"name_override,omitempty"`
	DescriptionOverride *string `json:"description_override,omitempty"`
	IntervalOverride    *int    `json:"interval_override,omitempty"` // days
	PreferredWeekday    *int    `json:"preferred_weekday,omitempty"` // 0=Sunday .. 6=Saturday

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName resolves the override chain against the owning template.
func (a *UserTaskAssignment) DisplayName(t *TaskTemplate) string {
	if a.NameOverride != nil && *a.NameOverride != "" {
		return *a.NameOverride
	}
	return t.Name
}
