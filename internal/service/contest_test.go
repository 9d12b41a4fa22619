package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

type staticContests []entities.Contest

func (s staticContests) GetAll() []entities.Contest { return s }

func TestContestUpcoming(t *testing.T) {
	src := staticContests{
		{ID: "late", Platform: entities.PlatformLeetCode, StartTime: fixedNow.Add(72 * time.Hour), DurationMinutes: 90},
		{ID: "done", Platform: entities.PlatformAtCoder, StartTime: fixedNow.Add(-5 * time.Hour), DurationMinutes: 100},
		{ID: "live", Platform: entities.PlatformCodeforces, StartTime: fixedNow.Add(-30 * time.Minute), DurationMinutes: 120},
		{ID: "soon", Platform: entities.PlatformCodeforces, StartTime: fixedNow.Add(2 * time.Hour), DurationMinutes: 120},
	}

	got := NewContestService(src).Upcoming(fixedNow)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"live", "soon", "late"}, ids)

	cf := ByPlatform(got, entities.PlatformCodeforces)
	assert.Len(t, cf, 2)
}
