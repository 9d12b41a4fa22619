package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

func problemIDs(problems []entities.SheetProblem) []string {
	ids := make([]string, 0, len(problems))
	for _, p := range problems {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestSheetFilter(t *testing.T) {
	s := NewSheetService(newFakeCatalog())

	state := entities.NewProgressState()
	state.Solved = entities.NewStringSet("1a", "2a")
	state.Bookmarked = entities.NewStringSet("1a", "3a")

	cases := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"everything", FilterOptions{}, []string{"1a", "1b", "1c", "2a", "2b", "2c", "3a"}},
		{"query is case-insensitive", FilterOptions{Query: "  SUM "}, []string{"1a"}},
		{"rating bucket", FilterOptions{Rating: intPtr(800)}, []string{"2a", "2b"}},
		{"rating excludes unrated", FilterOptions{Rating: intPtr(0)}, nil},
		{"bookmarked tab", FilterOptions{Tab: TabBookmarked}, []string{"1a", "3a"}},
		{"unsolved tab", FilterOptions{Tab: TabUnsolved}, []string{"1b", "1c", "2b", "2c", "3a"}},
		{"focus mode", FilterOptions{Tab: TabBookmarked, FocusMode: true}, []string{"3a"}},
		{"combined", FilterOptions{Query: "w", Rating: intPtr(800), FocusMode: true}, []string{"2b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Filter(state, tc.opts)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, problemIDs(got))
		})
	}
}

func TestSheetFilterKeepsDay(t *testing.T) {
	s := NewSheetService(newFakeCatalog())

	got := s.Filter(entities.NewProgressState(), FilterOptions{Query: "rain"})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Day)
}

func TestSheetTopicProgress(t *testing.T) {
	s := NewSheetService(newFakeCatalog())

	state := entities.NewProgressState()
	state.Solved = entities.NewStringSet("1a", "3a", "2c", "unknown")

	got := s.TopicProgress(state)
	assert.Equal(t, []TopicProgress{
		{Topic: "Arrays", Solved: 2, Total: 4, Percentage: 50},
		{Topic: "Math", Solved: 1, Total: 3, Percentage: 33},
	}, got)

	assert.Equal(t, []string{"Arrays", "Math"}, s.Topics())
}

func TestSheetCountsAndCompletion(t *testing.T) {
	s := NewSheetService(newFakeCatalog())

	assert.Equal(t, entities.ProblemStats{Easy: 4, Medium: 2, Hard: 1, Total: 7}, s.ProblemStats())

	state := entities.NewProgressState()
	state.Solved = entities.NewStringSet("1a", "1c", "3a", "4-A")

	assert.Equal(t, entities.ProblemStats{Easy: 1, Medium: 1, Hard: 1, Total: 3}, s.SolvedByDifficulty(state))
	assert.Equal(t, 43, s.Completion(state), "3 of 7 catalog problems, external keys ignored")

	assert.Equal(t, RatingProgress{Current: 4, Total: 7}, s.RatingProgress(state, nil))

	state.Solved["2b"] = struct{}{}
	assert.Equal(t, RatingProgress{Current: 1, Total: 2}, s.RatingProgress(state, intPtr(800)))
}

func TestPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 1, percent(1, 200), "0.5 rounds up")
	assert.Equal(t, 100, percent(7, 7))
}

func TestLastDays(t *testing.T) {
	days := LastDays(entities.DailySolves{"2026-03-10": 3, "2026-03-04": 1, "2026-03-03": 9}, 7, fixedNow)

	require.Len(t, days, 7)
	assert.Equal(t, DayActivity{Date: "2026-03-04", Label: "Wed", Count: 1}, days[0])
	assert.Equal(t, DayActivity{Date: "2026-03-10", Label: "Tue", Count: 3}, days[6])
	assert.Nil(t, LastDays(nil, 0, fixedNow))
}

func TestFindBestDay(t *testing.T) {
	assert.Equal(t, BestDay{}, FindBestDay(nil))
	assert.Equal(t,
		BestDay{Date: "2026-03-01", Count: 4},
		FindBestDay(entities.DailySolves{"2026-03-05": 4, "2026-03-01": 4, "2026-03-02": 1}),
	)
}
