package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

type contestRecord struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Platform         entities.Platform `json:"platform"`
	StartOffsetHours float64           `json:"startOffsetHours"`
	DurationMinutes  int               `json:"durationMinutes"`
	URL              string            `json:"url"`
}

// ContestRepository holds the static contest list.
// Start times are stored as offsets and resolved against the load time.
type ContestRepository struct {
	contests []entities.Contest
}

// NewContestRepository reads the contest list at path and anchors it at loadedAt.
func NewContestRepository(path string, loadedAt time.Time) (*ContestRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contests: %w", err)
	}

	var wrapper struct {
		Contests []contestRecord `json:"contests"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("unmarshal contests JSON: %w", err)
	}

	contests := make([]entities.Contest, 0, len(wrapper.Contests))
	for _, rec := range wrapper.Contests {
		if rec.DurationMinutes <= 0 {
			return nil, fmt.Errorf("contest %q: non-positive duration %d", rec.ID, rec.DurationMinutes)
		}
		offset := time.Duration(rec.StartOffsetHours * float64(time.Hour))
		contests = append(contests, entities.Contest{
			ID:              rec.ID,
			Name:            rec.Name,
			Platform:        rec.Platform,
			StartTime:       loadedAt.Add(offset),
			DurationMinutes: rec.DurationMinutes,
			URL:             rec.URL,
		})
	}

	return &ContestRepository{contests: contests}, nil
}

// GetAll returns the contests in file order.
func (r *ContestRepository) GetAll() []entities.Contest {
	return r.contests
}
