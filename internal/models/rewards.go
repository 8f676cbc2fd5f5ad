package models

// RewardSummary is what a completed task pays out. Warnings carry failed
// best-effort side effects (missing area, tool update error) without
// failing the completion itself.
type RewardSummary struct {
	ExpEarned          int      `json:"exp_earned"`
	CoinsEarned        int      `json:"coins_earned"`
	GemsEarned         int      `json:"gems_earned"`
	LevelUp            bool     `json:"level_up"`
	AreaHealthRestored int      `json:"area_health_restored"`
	Warnings           []string `json:"warnings,omitempty"`
}
