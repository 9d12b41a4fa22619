package service

import (
	"sort"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

type ContestService struct {
	source ContestSource
}

func NewContestService(source ContestSource) *ContestService {
	return &ContestService{source: source}
}

// Upcoming returns the contests that have not finished at now, earliest start first.
func (s *ContestService) Upcoming(now time.Time) []entities.Contest {
	var result []entities.Contest
	for _, c := range s.source.GetAll() {
		if c.Status(now) != entities.ContestFinished {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

// ByPlatform keeps only the contests hosted on platform.
func ByPlatform(contests []entities.Contest, platform entities.Platform) []entities.Contest {
	var result []entities.Contest
	for _, c := range contests {
		if c.Platform == platform {
			result = append(result, c)
		}
	}
	return result
}
