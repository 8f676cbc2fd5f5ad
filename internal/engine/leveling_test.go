package engine

import "testing"

func TestLevelForExperienceBoundaries(t *testing.T) {
	cases := []struct {
		exp  int
		want int
	}{
		{-5, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{390, 4},
		{410, 5},
		{1000, 11},
	}
	for _, c := range cases {
		if got := LevelForExperience(c.exp); got != c.want {
			t.Fatalf("LevelForExperience(%d)=%d, want %d", c.exp, got, c.want)
		}
	}
}

func TestLevelForExperienceMonotonic(t *testing.T) {
	prev := 0
	for exp := 0; exp <= 2000; exp += 7 {
		l := LevelForExperience(exp)
		if l < prev {
			t.Fatalf("level decreased at exp=%d: %d -> %d", exp, prev, l)
		}
		prev = l
	}
}

func TestDidLevelUp(t *testing.T) {
	if !DidLevelUp(390, 410) {
		t.Fatalf("390->410 should level up")
	}
	if DidLevelUp(410, 420) {
		t.Fatalf("410->420 should not level up")
	}
	if DidLevelUp(100, 100) {
		t.Fatalf("no gain should not level up")
	}
}

func TestCoinsForReward(t *testing.T) {
	cases := []struct{ exp, want int }{
		{20, 2}, {9, 0}, {10, 1}, {105, 10}, {-3, 0},
	}
	for _, c := range cases {
		if got := CoinsForReward(c.exp); got != c.want {
			t.Fatalf("CoinsForReward(%d)=%d, want %d", c.exp, got, c.want)
		}
	}
}
