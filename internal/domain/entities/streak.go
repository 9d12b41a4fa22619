package entities

import "time"

// WindowStats summarizes daily activity over a trailing window ending today.
type WindowStats struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
	ActiveDays    int `json:"activeDays"`
	TotalSolves   int `json:"totalSolves"`
}

// ComputeWindowStats scans windowDays calendar days backwards from the day of now
// (offset 0) to the oldest day (offset windowDays-1), both inclusive.
//
// A day is active when its bucket is positive. The current streak counts active
// days from today backwards and is zero when today itself is inactive.
func ComputeWindowStats(solves DailySolves, windowDays int, now time.Time) WindowStats {
	var (
		stats   WindowStats
		run     int
		current = true
	)

	for i := 0; i < windowDays; i++ {
		count := solves.Count(DateKey(DayOffset(now, -i)))
		if count <= 0 {
			run = 0
			current = false
			continue
		}

		run++
		stats.ActiveDays++
		stats.TotalSolves += count
		if current {
			stats.CurrentStreak = run
		}
		stats.LongestStreak = max(stats.LongestStreak, run)
	}

	return stats
}

// DayCell is one day of a heatmap or calendar view.
type DayCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BuildHeatmapGrid splits the trailing totalDays days, oldest first, into weeks of
// seven cells. A remainder shorter than a week is emitted as the last group.
func BuildHeatmapGrid(solves DailySolves, totalDays int, now time.Time) [][]DayCell {
	if totalDays <= 0 {
		return nil
	}

	weeks := make([][]DayCell, 0, (totalDays+6)/7)
	week := make([]DayCell, 0, 7)

	for i := totalDays - 1; i >= 0; i-- {
		key := DateKey(DayOffset(now, -i))
		week = append(week, DayCell{Date: key, Count: solves.Count(key)})

		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]DayCell, 0, 7)
		}
	}

	if len(week) > 0 {
		weeks = append(weeks, week)
	}

	return weeks
}

// MonthCell is one slot of a Monday-first month calendar. Padding cells have Day == 0.
type MonthCell struct {
	Date   string `json:"date,omitempty"`
	Day    int    `json:"day"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Placeholder reports whether the cell only pads the first week.
func (c MonthCell) Placeholder() bool {
	return c.Day == 0
}

// BuildMonthGrid lays out every day of month in year, left-padded with placeholder
// cells so that day 1 sits under its weekday column (Monday first).
func BuildMonthGrid(solves DailySolves, year int, month time.Month, loc *time.Location) []MonthCell {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	padding := (int(first.Weekday()) + 6) % 7
	daysInMonth := DayOffset(first.AddDate(0, 1, 0), -1).Day()

	cells := make([]MonthCell, padding, padding+daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		key := DateKey(time.Date(year, month, d, 0, 0, 0, 0, loc))
		count := solves.Count(key)
		cells = append(cells, MonthCell{
			Date:   key,
			Day:    d,
			Count:  count,
			Active: count > 0,
		})
	}

	return cells
}

// HeatLevel maps a day count to one of five intensity levels (0-4).
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	case count <= 4:
		return 3
	default:
		return 4
	}
}
