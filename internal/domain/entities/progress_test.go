package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestToggleSolvedScenario(t *testing.T) {
	p := NewProgressState()

	assert.True(t, p.ToggleSolved("1a", day))
	assert.True(t, p.Solved.Has("1a"))
	assert.Equal(t, 1, p.DailySolves["2026-03-10"])
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, "2026-03-10", p.LastSolveDate)

	assert.False(t, p.ToggleSolved("1a", day))
	assert.Empty(t, p.Solved)
	assert.Equal(t, 0, p.DailySolves["2026-03-10"])
	assert.Equal(t, 1, p.Streak, "un-solve keeps the incremental streak")
}

func TestToggleSolvedParity(t *testing.T) {
	for toggles := 1; toggles <= 6; toggles++ {
		p := NewProgressState()
		for i := 0; i < toggles; i++ {
			p.ToggleSolved("x", day)
		}
		assert.Equal(t, toggles%2 == 1, p.Solved.Has("x"), "toggles=%d", toggles)
	}
}

func TestToggleSolvedRemovesAttempted(t *testing.T) {
	p := NewProgressState()
	p.ToggleAttempted("2b")
	require.True(t, p.Attempted.Has("2b"))

	p.ToggleSolved("2b", day)
	assert.False(t, p.Attempted.Has("2b"))
}

func TestIncrementalStreak(t *testing.T) {
	p := NewProgressState()

	p.ToggleSolved("a", day)
	p.ToggleSolved("b", day)
	assert.Equal(t, 1, p.Streak, "second solve on the same day is not counted")

	p.ToggleSolved("c", day.AddDate(0, 0, 1))
	assert.Equal(t, 2, p.Streak)

	p.ToggleSolved("d", day.AddDate(0, 0, 4))
	assert.Equal(t, 1, p.Streak, "gap resets the streak")
	assert.Equal(t, "2026-03-14", p.LastSolveDate)
}

func TestUnsolveDoesNotMoveLastSolveDate(t *testing.T) {
	p := NewProgressState()
	p.ToggleSolved("a", day)

	p.ToggleSolved("a", day.AddDate(0, 0, 2))
	assert.Equal(t, "2026-03-10", p.LastSolveDate)
}

func TestUnsolveClampsBucketAtZero(t *testing.T) {
	p := NewProgressState()
	p.Solved = NewStringSet("old")

	p.ToggleSolved("old", day)
	_, ok := p.DailySolves["2026-03-10"]
	assert.False(t, ok, "no bucket is created for a day without solves")

	p.DailySolves["2026-03-10"] = 0
	p.Solved = NewStringSet("old")
	p.ToggleSolved("old", day)
	assert.Equal(t, 0, p.DailySolves["2026-03-10"])
}

func TestToggleAttemptedNoopWhenSolved(t *testing.T) {
	for _, attempted := range []bool{false, true} {
		p := NewProgressState()
		p.Solved = NewStringSet("3a")
		if attempted {
			p.Attempted = NewStringSet("3a")
		}

		assert.False(t, p.ToggleAttempted("3a"))
		assert.Equal(t, attempted, p.Attempted.Has("3a"))
	}
}

func TestToggleBookmarkTwiceRestores(t *testing.T) {
	p := NewProgressState()
	p.ToggleBookmark("4c")
	p.ToggleBookmark("4c")
	assert.False(t, p.Bookmarked.Has("4c"))

	p.Bookmarked = NewStringSet("4c")
	p.ToggleBookmark("4c")
	p.ToggleBookmark("4c")
	assert.True(t, p.Bookmarked.Has("4c"))
}

func TestUnknownIDsAreAccepted(t *testing.T) {
	p := NewProgressState()
	assert.True(t, p.ToggleSolved("not-in-catalog", day))
	assert.True(t, p.ToggleBookmark("also-unknown"))
}

func TestMergeSolved(t *testing.T) {
	p := NewProgressState()
	p.Solved = NewStringSet("1a")
	p.Attempted = NewStringSet("4-A")

	added := p.MergeSolved([]string{"1a", "4-A", "1-A"})
	assert.Equal(t, 2, added)
	assert.ElementsMatch(t, []string{"1a", "4-A", "1-A"}, p.Solved.Sorted())
	assert.Empty(t, p.Attempted)
	assert.Empty(t, p.DailySolves)
	assert.Zero(t, p.Streak)
}

func TestReset(t *testing.T) {
	p := NewProgressState()
	p.ToggleSolved("a", day)
	p.ToggleBookmark("b")

	p.Reset()
	assert.Empty(t, p.Solved)
	assert.Empty(t, p.Bookmarked)
	assert.Empty(t, p.DailySolves)
	assert.Zero(t, p.Streak)
	assert.Empty(t, p.LastSolveDate)
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewProgressState()
	p.ToggleSolved("a", day)

	c := p.Clone()
	c.ToggleSolved("b", day)
	assert.False(t, p.Solved.Has("b"))
	assert.Equal(t, 1, p.DailySolves["2026-03-10"])
}

func TestProgressJSONRoundTrip(t *testing.T) {
	p := NewProgressState()
	p.ToggleSolved("1a", day)
	p.ToggleSolved("2c", day.AddDate(0, 0, 1))
	p.ToggleAttempted("5b")
	p.ToggleBookmark("31c")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got ProgressState
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, p.Solved, got.Solved)
	assert.Equal(t, p.Attempted, got.Attempted)
	assert.Equal(t, p.Bookmarked, got.Bookmarked)
	assert.Equal(t, p.DailySolves, got.DailySolves)
	assert.Equal(t, p.Streak, got.Streak)
	assert.Equal(t, p.LastSolveDate, got.LastSolveDate)
}

func TestProgressJSONLayout(t *testing.T) {
	p := NewProgressState()
	p.Solved = NewStringSet("b", "a")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"solved":["a","b"],"attempted":[],"bookmarked":[],"streak":0,"lastSolveDate":null,"dailySolves":{}}`,
		string(data),
	)
}

func TestProgressJSONMissingKeys(t *testing.T) {
	var got ProgressState
	require.NoError(t, json.Unmarshal([]byte(`{"solved":["1a"]}`), &got))

	assert.True(t, got.Solved.Has("1a"))
	assert.NotNil(t, got.Attempted)
	assert.NotNil(t, got.Bookmarked)
	assert.NotNil(t, got.DailySolves)
	assert.Empty(t, got.LastSolveDate)
}

func TestProgressJSONLegacyKeys(t *testing.T) {
	var got ProgressState
	doc := `{"solvedProblems":["1a"],"bookmarkedProblems":["2b"],"streak":3,"lastSolveDate":"2026-03-09","dailySolves":{"2026-03-09":2}}`
	require.NoError(t, json.Unmarshal([]byte(doc), &got))

	assert.True(t, got.Solved.Has("1a"))
	assert.True(t, got.Bookmarked.Has("2b"))
	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, 2, got.DailySolves["2026-03-09"])
}

func TestProgressJSONMalformed(t *testing.T) {
	var got ProgressState
	assert.Error(t, json.Unmarshal([]byte(`{"solved":`), &got))
}
