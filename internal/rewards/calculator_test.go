package rewards

import (
	"testing"
	"time"
)

func TestStreakCyclesAtSeven(t *testing.T) {
	start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	var last *time.Time
	days := 0
	want := []int{1, 2, 3, 4, 5, 6, 7, 1, 2}
	for i, expected := range want {
		today := start.AddDate(0, 0, i)
		newDays, _ := ComputeCheckIn(last, days, today)
		if newDays != expected {
			t.Fatalf("day %d: expected streak %d, got %d", i, expected, newDays)
		}
		checkedIn := today
		last = &checkedIn
		days = newDays
	}
}

func TestDaySevenPaysWeeklyBonus(t *testing.T) {
	yesterday := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 8, 0, 1, 0, 0, time.UTC)

	newDays, points := ComputeCheckIn(&yesterday, 6, today)
	if newDays != 7 {
		t.Fatalf("expected streak day 7, got %d", newDays)
	}
	if points != 30 {
		t.Fatalf("expected 30 points on day 7, got %d", points)
	}
}

func TestGapResetsStreak(t *testing.T) {
	last := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

	newDays, points := ComputeCheckIn(&last, 5, today)
	if newDays != 1 {
		t.Fatalf("expected streak reset to 1, got %d", newDays)
	}
	if points != 5 {
		t.Fatalf("expected 5 points on day 1, got %d", points)
	}
}

func TestNoHistoryStartsAtOne(t *testing.T) {
	today := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	newDays, points := ComputeCheckIn(nil, 0, today)
	if newDays != 1 || points != 5 {
		t.Fatalf("expected day 1 / 5 points, got %d / %d", newDays, points)
	}
}

func TestSameCalendarDayComparesUTCDateParts(t *testing.T) {
	a := time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 1, 23, 55, 0, 0, time.UTC)
	if !SameCalendarDay(a, b) {
		t.Fatalf("expected same calendar day")
	}

	// 25 hours apart but still adjacent days, not the same one.
	c := b.Add(time.Hour)
	if SameCalendarDay(b, c) {
		t.Fatalf("expected different calendar days across midnight")
	}

	// Zoned instants are normalized to UTC first.
	zone := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, time.March, 2, 8, 0, 0, 0, zone) // 22:00 March 1 UTC
	if !SameCalendarDay(a, d) {
		t.Fatalf("expected zoned instant to fall on the same UTC day")
	}
}
