package models

import "time"

// UserTool is a cleaning tool owned by a user. 0 <= CurrentDurability <=
// MaxDurability; a tool at zero stays usable, callers surface "needs
// replacement" from the durability value.
type UserTool struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	ToolID            string    `json:"tool_id"` // stable identifier, e.g. "vacuum"
	Name              string    `json:"name"`
	CurrentDurability int       `json:"current_durability"`
	MaxDurability     int       `json:"max_durability"`
	UsesCount         int       `json:"uses_count"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

func (t *UserTool) NeedsReplacement() bool {
	return t.CurrentDurability <= 0
}
