package engine

import (
	"testing"
	"time"

	"chorequest/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceDaily(t *testing.T) {
	anchor := date(2025, time.March, 10)
	got := NextOccurrence(anchor, models.FrequencyDaily, nil)
	if want := date(2025, time.March, 11); !got.Equal(want) {
		t.Fatalf("daily: got %v, want %v", got, want)
	}
}

func TestNextOccurrenceWeeklyPlain(t *testing.T) {
	anchor := date(2025, time.March, 10)
	got := NextOccurrence(anchor, models.FrequencyWeekly, nil)
	if want := date(2025, time.March, 17); !got.Equal(want) {
		t.Fatalf("weekly: got %v, want %v", got, want)
	}
}

func TestNextOccurrenceWeeklyPreferredWeekday(t *testing.T) {
	// 2025-03-10 is a Monday
	anchor := date(2025, time.March, 10)

	fri := int(time.Friday)
	got := NextOccurrence(anchor, models.FrequencyWeekly, &fri)
	if want := date(2025, time.March, 14); !got.Equal(want) {
		t.Fatalf("weekly->friday: got %v, want %v", got, want)
	}

	// same weekday must advance a full week, never return the anchor
	mon := int(time.Monday)
	got = NextOccurrence(anchor, models.FrequencyWeekly, &mon)
	if want := date(2025, time.March, 17); !got.Equal(want) {
		t.Fatalf("weekly->same monday: got %v, want %v", got, want)
	}
}

func TestNextOccurrenceMonthlyPreservesDay(t *testing.T) {
	got := NextOccurrence(date(2025, time.April, 15), models.FrequencyMonthly, nil)
	if want := date(2025, time.May, 15); !got.Equal(want) {
		t.Fatalf("monthly: got %v, want %v", got, want)
	}
}

func TestNextOccurrenceYearly(t *testing.T) {
	got := NextOccurrence(date(2025, time.June, 1), models.FrequencyYearly, nil)
	if want := date(2026, time.June, 1); !got.Equal(want) {
		t.Fatalf("yearly: got %v, want %v", got, want)
	}
}

func TestNextOccurrenceAlwaysAdvances(t *testing.T) {
	anchors := []time.Time{
		date(2025, time.January, 31),
		date(2024, time.February, 29),
		date(2025, time.December, 31),
	}
	freqs := []models.Frequency{
		models.FrequencyDaily, models.FrequencyWeekly,
		models.FrequencyMonthly, models.FrequencyYearly,
	}
	for _, a := range anchors {
		for _, f := range freqs {
			if got := NextOccurrence(a, f, nil); !got.After(a) {
				t.Fatalf("%s from %v: got %v, not after anchor", f, a, got)
			}
		}
		for wd := 0; wd < 7; wd++ {
			w := wd
			if got := NextOccurrence(a, models.FrequencyWeekly, &w); !got.After(a) {
				t.Fatalf("weekly wd=%d from %v: got %v, not after anchor", wd, a, got)
			}
		}
	}
}

func TestNextAfterInterval(t *testing.T) {
	anchor := date(2025, time.March, 10)
	if got := NextAfterInterval(anchor, 3); !got.Equal(date(2025, time.March, 13)) {
		t.Fatalf("interval 3: got %v", got)
	}
	// zero and negative intervals still make forward progress
	if got := NextAfterInterval(anchor, 0); !got.After(anchor) {
		t.Fatalf("interval 0: got %v, not after anchor", got)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, time.March, 10, 18, 45, 12, 0, time.UTC)
	if got := DateOnly(in); !got.Equal(date(2025, time.March, 10)) {
		t.Fatalf("DateOnly: got %v", got)
	}
}
