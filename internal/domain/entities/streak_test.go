package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyAgo(now time.Time, days int) string {
	return DateKey(DayOffset(now, -days))
}

func TestComputeWindowStats(t *testing.T) {
	now := day
	solves := DailySolves{
		keyAgo(now, 0): 2,
		keyAgo(now, 1): 1,
		keyAgo(now, 3): 1,
	}

	stats := ComputeWindowStats(solves, 7, now)
	assert.Equal(t, WindowStats{CurrentStreak: 2, LongestStreak: 2, ActiveDays: 3, TotalSolves: 4}, stats)
}

func TestComputeWindowStatsTodayInactive(t *testing.T) {
	now := day
	solves := DailySolves{keyAgo(now, 1): 5}

	stats := ComputeWindowStats(solves, 7, now)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	assert.Equal(t, 5, stats.TotalSolves)
}

func TestComputeWindowStatsBoundary(t *testing.T) {
	now := day
	solves := DailySolves{
		keyAgo(now, 6): 1,
		keyAgo(now, 7): 9,
	}

	stats := ComputeWindowStats(solves, 7, now)
	assert.Equal(t, 1, stats.ActiveDays, "oldest day is included, the one before is not")
	assert.Equal(t, 1, stats.TotalSolves)
}

func TestComputeWindowStatsIgnoresNonPositive(t *testing.T) {
	now := day
	solves := DailySolves{
		keyAgo(now, 0): 1,
		keyAgo(now, 1): -2,
		keyAgo(now, 2): 1,
	}

	stats := ComputeWindowStats(solves, 30, now)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	assert.Equal(t, 2, stats.ActiveDays)
}

func TestComputeWindowStatsLongestInMiddle(t *testing.T) {
	now := day
	solves := DailySolves{}
	for i := 10; i < 15; i++ {
		solves[keyAgo(now, i)] = 1
	}

	stats := ComputeWindowStats(solves, 365, now)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 5, stats.LongestStreak)
}

func TestComputeWindowStatsAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	now := time.Date(2026, time.March, 30, 0, 30, 0, 0, loc)
	solves := DailySolves{
		"2026-03-30": 1,
		"2026-03-29": 1,
		"2026-03-28": 1,
	}

	stats := ComputeWindowStats(solves, 3, now)
	assert.Equal(t, 3, stats.CurrentStreak)
}

func TestBuildHeatmapGrid365(t *testing.T) {
	now := day
	weeks := BuildHeatmapGrid(DailySolves{DateKey(now): 3}, 365, now)

	require.Len(t, weeks, 53)
	for _, w := range weeks[:52] {
		assert.Len(t, w, 7)
	}
	require.Len(t, weeks[52], 1)

	last := weeks[52][0]
	assert.Equal(t, DateKey(now), last.Date)
	assert.Equal(t, 3, last.Count)
	assert.Equal(t, keyAgo(now, 364), weeks[0][0].Date)
}

func TestBuildHeatmapGrid364(t *testing.T) {
	weeks := BuildHeatmapGrid(DailySolves{}, 364, day)

	require.Len(t, weeks, 52)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
}

func TestBuildHeatmapGridEmpty(t *testing.T) {
	assert.Nil(t, BuildHeatmapGrid(DailySolves{}, 0, day))
}

func TestBuildMonthGrid(t *testing.T) {
	// March 2026 starts on a Sunday, six placeholders on a Monday-first grid.
	cells := BuildMonthGrid(DailySolves{"2026-03-02": 1, "2026-03-03": 0}, 2026, time.March, time.UTC)

	require.Len(t, cells, 6+31)
	for _, c := range cells[:6] {
		assert.True(t, c.Placeholder())
		assert.False(t, c.Active)
	}

	first := cells[6]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2026-03-01", first.Date)

	assert.True(t, cells[7].Active)
	assert.False(t, cells[8].Active)
}

func TestBuildMonthGridMondayStart(t *testing.T) {
	// June 2026 starts on a Monday.
	cells := BuildMonthGrid(DailySolves{}, 2026, time.June, time.UTC)

	require.Len(t, cells, 30)
	assert.Equal(t, 1, cells[0].Day)
}

func TestBuildMonthGridLeapFebruary(t *testing.T) {
	cells := BuildMonthGrid(DailySolves{}, 2028, time.February, time.UTC)

	// 1 Feb 2028 is a Tuesday.
	require.Len(t, cells, 1+29)
	assert.Equal(t, "2028-02-29", cells[len(cells)-1].Date)
}

func TestHeatLevel(t *testing.T) {
	cases := map[int]int{-1: 0, 0: 0, 1: 1, 2: 2, 3: 3, 4: 3, 5: 4, 20: 4}
	for count, want := range cases {
		assert.Equal(t, want, HeatLevel(count), "count=%d", count)
	}
}

func TestStreakAtRisk(t *testing.T) {
	now := day
	run, ok := StreakAtRisk(DailySolves{keyAgo(now, 1): 1, keyAgo(now, 2): 2}, 365, now)
	assert.True(t, ok)
	assert.Equal(t, 2, run)

	_, ok = StreakAtRisk(DailySolves{keyAgo(now, 0): 1, keyAgo(now, 1): 1}, 365, now)
	assert.False(t, ok, "already solved today")

	_, ok = StreakAtRisk(DailySolves{keyAgo(now, 2): 1}, 365, now)
	assert.False(t, ok, "no run ending yesterday")
}
