package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

func TestParseFindArgs(t *testing.T) {
	opts, err := parseFindArgs("two sum")
	require.NoError(t, err)
	assert.Equal(t, "two sum", opts.Query)
	assert.Nil(t, opts.Rating)
	assert.Equal(t, service.TabAll, opts.Tab)

	opts, err = parseFindArgs("Rating:800 water")
	require.NoError(t, err)
	assert.Equal(t, "water", opts.Query)
	require.NotNil(t, opts.Rating)
	assert.Equal(t, 800, *opts.Rating)

	opts, err = parseFindArgs("rating:1200")
	require.NoError(t, err)
	assert.Empty(t, opts.Query)

	_, err = parseFindArgs("")
	assert.Error(t, err)

	_, err = parseFindArgs("rating:abc")
	assert.Error(t, err)
}

func TestParseMonthArg(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	year, month, err := parseMonthArg("", now)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.March, month)

	year, month, err = parseMonthArg(" 2025-12 ", now)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.December, month)

	_, _, err = parseMonthArg("March", now)
	assert.Error(t, err)
}

func TestParseTaskArgs(t *testing.T) {
	in, err := parseTaskArgs("https://codeforces.com/problemset/problem/4/A | Watermelon | Math | Easy | Codeforces | warm-up")
	require.NoError(t, err)
	assert.Equal(t, service.NewTask{
		ProblemLink: "https://codeforces.com/problemset/problem/4/A",
		ProblemName: "Watermelon",
		Topic:       "Math",
		Difficulty:  entities.DifficultyEasy,
		Platform:    entities.PlatformCodeforces,
		Notes:       "warm-up",
	}, in)

	in, err = parseTaskArgs("link|name||hard|leetcode")
	require.NoError(t, err)
	assert.Empty(t, in.Topic)
	assert.Empty(t, in.Notes)

	_, err = parseTaskArgs("link|name|topic")
	assert.Error(t, err)
}

func TestParseTaskPatch(t *testing.T) {
	id, patch, err := parseTaskPatch("7f1c notes= try two pointers | Difficulty=MEDIUM | topic=")
	require.NoError(t, err)
	assert.Equal(t, "7f1c", id)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "try two pointers", *patch.Notes)
	require.NotNil(t, patch.Difficulty)
	assert.Equal(t, entities.DifficultyMedium, *patch.Difficulty)
	require.NotNil(t, patch.Topic)
	assert.Empty(t, *patch.Topic, "an empty value clears the field")
	assert.Nil(t, patch.ProblemLink)
	assert.Nil(t, patch.ProblemName)
	assert.Nil(t, patch.Platform)

	task := entities.AdminTask{ID: id, ProblemName: "Watermelon", Topic: "Math", Difficulty: entities.DifficultyEasy}
	task.Apply(patch)
	assert.Equal(t, entities.DifficultyMedium, task.Difficulty)
	assert.Equal(t, "Watermelon", task.ProblemName)
	assert.Empty(t, task.Topic)

	_, patch, err = parseTaskPatch("7f1c platform=LeetCode|link=https://leetcode.com/problems/two-sum/")
	require.NoError(t, err)
	assert.Equal(t, entities.PlatformLeetCode, *patch.Platform)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", *patch.ProblemLink)

	for _, args := range []string{"", "7f1c", "7f1c notes", "7f1c rating=1200", "  notes=x"} {
		_, _, err = parseTaskPatch(args)
		assert.ErrorIs(t, err, errUsage, "args=%q", args)
	}
}
