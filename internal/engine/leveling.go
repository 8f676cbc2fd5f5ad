package engine

const (
	// ExpPerLevel is the flat per-level experience step.
	ExpPerLevel = 100

	// ExpPerCoin converts an experience reward into coins (integer floor).
	ExpPerCoin = 10
)

// LevelForExperience maps cumulative experience to a level:
// floor(exp/100) + 1, never below level 1. Deterministic and monotonic.
func LevelForExperience(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return exp/ExpPerLevel + 1
}

func DidLevelUp(oldExp, newExp int) bool {
	return LevelForExperience(newExp) > LevelForExperience(oldExp)
}

// CoinsForReward is floor(expReward/10).
func CoinsForReward(expReward int) int {
	if expReward < 0 {
		return 0
	}
	return expReward / ExpPerCoin
}
