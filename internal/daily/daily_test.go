package daily

import (
	"strings"
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 08:00 in Tokyo on the 19th is still the 18th in UTC.
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, tokyo)
	if got := DateKey(at); got != "2026-10-18" {
		t.Errorf("DateKey = %q, want 2026-10-18", got)
	}
}

func TestSeed(t *testing.T) {
	day := time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC)
	later := day.Add(15 * time.Hour)
	next := day.Add(24 * time.Hour)

	a1, a2 := Seed(day, "salt")
	b1, b2 := Seed(later, "salt")
	if a1 != b1 || a2 != b2 {
		t.Error("same date produced different seeds")
	}
	if c1, c2 := Seed(next, "salt"); c1 == a1 && c2 == a2 {
		t.Error("next day produced the same seed")
	}
	if d1, d2 := Seed(day, "other"); d1 == a1 && d2 == a2 {
		t.Error("different salt produced the same seed")
	}

	long := strings.Repeat("x", 200)
	e1, e2 := Seed(day, long)
	f1, f2 := Seed(day, long)
	if e1 != f1 || e2 != f2 {
		t.Error("long salt is not deterministic")
	}
}
