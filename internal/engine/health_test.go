package engine

import "testing"

func TestRestoreCapsAtMax(t *testing.T) {
	if got := Restore(90, 100, 15); got != 100 {
		t.Fatalf("Restore(90,100,15)=%d, want 100", got)
	}
	if got := Restore(40, 100, 15); got != 55 {
		t.Fatalf("Restore(40,100,15)=%d, want 55", got)
	}
}

func TestDecayFloorsAtZero(t *testing.T) {
	if got := Decay(10, 25); got != 0 {
		t.Fatalf("Decay(10,25)=%d, want 0", got)
	}
	if got := Decay(50, 20); got != 30 {
		t.Fatalf("Decay(50,20)=%d, want 30", got)
	}
}

func TestHealthPercentRounds(t *testing.T) {
	cases := []struct{ cur, max, want int }{
		{100, 100, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 100, 0},
		{50, 0, 0}, // degenerate max
	}
	for _, c := range cases {
		if got := HealthPercent(c.cur, c.max); got != c.want {
			t.Fatalf("HealthPercent(%d,%d)=%d, want %d", c.cur, c.max, got, c.want)
		}
	}
}

func TestStatusTiers(t *testing.T) {
	cases := []struct {
		percent int
		want    AreaStatus
	}{
		{100, StatusExcellent},
		{81, StatusExcellent},
		{80, StatusGood},
		{51, StatusGood},
		{50, StatusNeedsAttention},
		{21, StatusNeedsAttention},
		{20, StatusCritical},
		{0, StatusCritical},
	}
	for _, c := range cases {
		if got := StatusForPercent(c.percent); got != c.want {
			t.Fatalf("StatusForPercent(%d)=%q, want %q", c.percent, got, c.want)
		}
	}
}

func TestApplyUseFloorsAtZero(t *testing.T) {
	if got := ApplyUse(3, 5); got != 0 {
		t.Fatalf("ApplyUse(3,5)=%d, want 0", got)
	}
	if got := ApplyUse(10, 2); got != 8 {
		t.Fatalf("ApplyUse(10,2)=%d, want 8", got)
	}
	// already-exhausted tools never go negative and never error
	if got := ApplyUse(0, 4); got != 0 {
		t.Fatalf("ApplyUse(0,4)=%d, want 0", got)
	}
}
