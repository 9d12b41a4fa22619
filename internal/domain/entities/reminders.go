package entities

import "time"

// StreakReminder is the payload of a streak-at-risk nudge.
type StreakReminder struct {
	UserID        int64
	ChatID        int64
	CurrentStreak int // consecutive active days ending yesterday
	SolvedTotal   int
}

// StreakAtRisk reports whether yesterday was active and today has no solves yet.
// It returns the length of the run that ends yesterday.
func StreakAtRisk(solves DailySolves, windowDays int, now time.Time) (int, bool) {
	if solves.Count(DateKey(now)) > 0 {
		return 0, false
	}

	run := ComputeWindowStats(solves, windowDays, DayOffset(now, -1)).CurrentStreak
	return run, run > 0
}
