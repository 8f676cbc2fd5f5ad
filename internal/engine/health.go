package engine

import "math"

// AreaStatus is the four-tier classification of an area's health percent.
type AreaStatus string

const (
	StatusExcellent      AreaStatus = "excellent"       // > 80%
	StatusGood           AreaStatus = "good"            // > 50%
	StatusNeedsAttention AreaStatus = "needs_attention" // > 20%
	StatusCritical       AreaStatus = "critical"        // <= 20%
)

// Restore raises health by amount, capped at max.
func Restore(current, max, amount int) int {
	n := current + amount
	if n > max {
		return max
	}
	return n
}

// Decay lowers health by amount, floored at zero. When to decay is the
// caller's call; only the bounded arithmetic lives here.
func Decay(current, amount int) int {
	n := current - amount
	if n < 0 {
		return 0
	}
	return n
}

// HealthPercent reports current/max rounded to the nearest whole percent.
func HealthPercent(current, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(max) * 100))
}

func StatusForPercent(percent int) AreaStatus {
	switch {
	case percent > 80:
		return StatusExcellent
	case percent > 50:
		return StatusGood
	case percent > 20:
		return StatusNeedsAttention
	default:
		return StatusCritical
	}
}
