// Package rewards holds the pure check-in streak arithmetic. All
// calendar comparisons use UTC so a check-in counts for the same day
// regardless of the server's local zone.
package rewards

import "time"

// rewardTable maps streak day (1-based) to points earned. Day 7 pays
// the weekly retention bonus.
var rewardTable = [7]int{5, 10, 5, 7, 5, 5, 30}

// StreakCycle is the length of the check-in streak before it wraps.
const StreakCycle = len(rewardTable)

// ComputeCheckIn returns the new consecutive-day count and the points
// earned for a check-in happening on today. The streak continues only
// when lastCheckIn falls on the calendar day immediately before today;
// any gap (or no prior check-in) resets it to day 1. The counter is
// cyclic: day 7 followed by a consecutive check-in yields day 1, never
// day 8.
func ComputeCheckIn(lastCheckIn *time.Time, consecutiveDays int, today time.Time) (newDays, points int) {
	if lastCheckIn != nil && SameCalendarDay(*lastCheckIn, today.AddDate(0, 0, -1)) {
		newDays = (consecutiveDays % StreakCycle) + 1
	} else {
		newDays = 1
	}
	return newDays, rewardTable[newDays-1]
}

// SameCalendarDay reports whether a and b fall on the same UTC calendar
// day, comparing year/month/day rather than elapsed time.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
