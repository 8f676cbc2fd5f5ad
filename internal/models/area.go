package models

import "time"

// HomeArea tracks the cleanliness of one zone. 0 <= CurrentHealth <= MaxHealth.
type HomeArea struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	AreaType      Category   `json:"area_type"`
	Name          string     `json:"name"`
	CurrentHealth int        `json:"current_health"`
	MaxHealth     int        `json:"max_health"`
	LastCleanedAt *time.Time `json:"last_cleaned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
