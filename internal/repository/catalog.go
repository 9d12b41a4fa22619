package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// SheetDays is the number of day plans the sheet must contain.
const SheetDays = 31

var (
	ErrDayNotFound     = errors.New("day not found")
	ErrProblemNotFound = errors.New("problem not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

// CatalogRepository provides read-only access to the 31-day problem sheet.
type CatalogRepository struct {
	days     []entities.DayPlan
	problems map[string]entities.SheetProblem
}

// NewCatalogRepository loads and validates the sheet stored at path.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var wrapper struct {
		Days []entities.DayPlan `json:"days"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: unmarshal catalog JSON: %v", ErrInvalidCatalog, err)
	}

	return NewCatalog(wrapper.Days)
}

// NewCatalog validates days and builds a repository over them.
// Days must be numbered 1..31 in order, each with at least one problem,
// and problem ids must be unique across the whole sheet.
func NewCatalog(days []entities.DayPlan) (*CatalogRepository, error) {
	if len(days) != SheetDays {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrInvalidCatalog, SheetDays, len(days))
	}

	problems := make(map[string]entities.SheetProblem)
	for i, d := range days {
		if d.Day != i+1 {
			return nil, fmt.Errorf("%w: day at position %d is numbered %d", ErrInvalidCatalog, i+1, d.Day)
		}
		if len(d.Problems) == 0 {
			return nil, fmt.Errorf("%w: day %d has no problems", ErrInvalidCatalog, d.Day)
		}

		for _, p := range d.Problems {
			if p.ID == "" {
				return nil, fmt.Errorf("%w: day %d has a problem without id", ErrInvalidCatalog, d.Day)
			}
			if _, dup := problems[p.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate problem id %q", ErrInvalidCatalog, p.ID)
			}
			if !p.Platform.Valid() {
				return nil, fmt.Errorf("%w: problem %q has unknown platform %q", ErrInvalidCatalog, p.ID, p.Platform)
			}
			if !p.Difficulty.Valid() {
				return nil, fmt.Errorf("%w: problem %q has unknown difficulty %q", ErrInvalidCatalog, p.ID, p.Difficulty)
			}
			problems[p.ID] = entities.SheetProblem{Problem: p, Day: d.Day}
		}
	}

	return &CatalogRepository{
		days:     days,
		problems: problems,
	}, nil
}

// Days returns all day plans in sheet order.
func (r *CatalogRepository) Days() []entities.DayPlan {
	return r.days
}

// GetDay retrieves a day plan by its number (1-31).
func (r *CatalogRepository) GetDay(day int) (*entities.DayPlan, error) {
	if day < 1 || day > len(r.days) {
		return nil, ErrDayNotFound
	}
	return &r.days[day-1], nil
}

// GetProblem retrieves a problem together with the day it belongs to.
func (r *CatalogRepository) GetProblem(id string) (entities.SheetProblem, error) {
	p, ok := r.problems[id]
	if !ok {
		return entities.SheetProblem{}, ErrProblemNotFound
	}
	return p, nil
}

// Problems returns every sheet problem flattened in day order.
func (r *CatalogRepository) Problems() []entities.SheetProblem {
	result := make([]entities.SheetProblem, 0, len(r.problems))
	for _, d := range r.days {
		for _, p := range d.Problems {
			result = append(result, entities.SheetProblem{Problem: p, Day: d.Day})
		}
	}
	return result
}

// Total returns the number of problems on the sheet.
func (r *CatalogRepository) Total() int {
	return len(r.problems)
}
