package models

import "time"

// Frequency is the recurrence class of a task template.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Category ties a template to the home area it maintains.
type Category string

const (
	CategoryKitchen    Category = "kitchen"
	CategoryBathroom   Category = "bathroom"
	CategoryBedroom    Category = "bedroom"
	CategoryLivingRoom Category = "living_room"
	CategoryLaundry    Category = "laundry"
	CategoryOutdoor    Category = "outdoor"
	CategoryGeneral    Category = "general"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryKitchen, CategoryBathroom, CategoryBedroom,
		CategoryLivingRoom, CategoryLaundry, CategoryOutdoor, CategoryGeneral:
		return true
	}
	return false
}

// TemplateSource records who authored a template.
type TemplateSource string

const (
	SourceUser TemplateSource = "user"
	SourceAI   TemplateSource = "ai"
)

// TaskTemplate is the reusable definition of a recurring chore.
// Templates are edited rarely and never deleted while active assignments
// reference them.
type TaskTemplate struct {
	ID               int64          `json:"id"`
	CreatedBy        int64          `json:"created_by"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Category         Category       `json:"category"`
	Frequency        Frequency      `json:"frequency"`
	IntervalDays     int            `json:"interval_days"`
	Importance       int            `json:"importance"` // 1..5
	ExpReward        int            `json:"exp_reward"`
	AreaHealthImpact int            `json:"area_health_impact"`
	ToolsRequired    []string       `json:"tools_required"`
	ToolsUsage       map[string]int `json:"tools_usage"` // tool id -> durability loss per use
	Source           TemplateSource `json:"source"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type TemplateFilter struct {
	CreatedBy *int64
	Category  *Category
	Source    *TemplateSource
}
