package engine

import (
	"time"

	"chorequest/internal/models"
)

// NextOccurrence returns the next due date after anchor for the given
// frequency. It always moves forward: the result is strictly later than
// the anchor. Frequency validity is a caller contract, enforced when the
// template is created; an unknown value falls back to daily.
//
// Monthly and yearly use calendar arithmetic, so day-of-month is preserved
// where the target month has it (Jan 31 normalizes past Feb).
func NextOccurrence(anchor time.Time, freq models.Frequency, preferredWeekday *int) time.Time {
	switch freq {
	case models.FrequencyWeekly:
		if preferredWeekday == nil {
			return anchor.AddDate(0, 0, 7)
		}
		return nextWeekday(anchor, time.Weekday(*preferredWeekday%7))
	case models.FrequencyMonthly:
		return anchor.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		return anchor.AddDate(1, 0, 0)
	case models.FrequencyDaily:
		fallthrough
	default:
		return anchor.AddDate(0, 0, 1)
	}
}

// NextAfterInterval is the override path: a fixed number of days regardless
// of the template's frequency class.
func NextAfterInterval(anchor time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return anchor.AddDate(0, 0, days)
}

// nextWeekday advances to the next date whose weekday matches target. When
// the anchor already falls on the target weekday it advances a full week,
// never returning the anchor itself.
func nextWeekday(anchor time.Time, target time.Weekday) time.Time {
	delta := (int(target) - int(anchor.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return anchor.AddDate(0, 0, delta)
}

// DateOnly truncates to midnight UTC so (assignment, due_date) comparisons
// ignore the time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
