package service

import (
	"sort"
	"strings"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// Tab selects which part of the sheet Filter returns.
type Tab string

const (
	TabAll        Tab = "all"
	TabBookmarked Tab = "bookmarked"
	TabUnsolved   Tab = "unsolved"
)

// FilterOptions narrows the sheet. Zero values match everything.
type FilterOptions struct {
	Query     string // case-insensitive substring of the problem name
	Rating    *int   // bucket [Rating, Rating+100)
	Tab       Tab
	FocusMode bool // hide solved problems
}

type TopicProgress struct {
	Topic      string `json:"topic"`
	Solved     int    `json:"solved"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type RatingProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type DayActivity struct {
	Date  string `json:"date"`
	Label string `json:"label"` // short weekday name
	Count int    `json:"count"`
}

type BestDay struct {
	Date  string `json:"date,omitempty"`
	Count int    `json:"count"`
}

// SheetService answers catalog questions, optionally against a user's state.
type SheetService struct {
	catalog Catalog
}

func NewSheetService(catalog Catalog) *SheetService {
	return &SheetService{catalog: catalog}
}

func (s *SheetService) Days() []entities.DayPlan {
	return s.catalog.Days()
}

func (s *SheetService) Day(day int) (*entities.DayPlan, error) {
	return s.catalog.GetDay(day)
}

// ProblemStats counts catalog problems by difficulty.
func (s *SheetService) ProblemStats() entities.ProblemStats {
	var stats entities.ProblemStats
	for _, p := range s.catalog.Problems() {
		stats.Add(p.Difficulty)
	}
	return stats
}

// Topics returns the distinct day topics in sheet order.
func (s *SheetService) Topics() []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, d := range s.catalog.Days() {
		if _, ok := seen[d.Topic]; ok {
			continue
		}
		seen[d.Topic] = struct{}{}
		topics = append(topics, d.Topic)
	}
	return topics
}

// Filter returns the sheet problems matching opts, in day order.
func (s *SheetService) Filter(state *entities.ProgressState, opts FilterOptions) []entities.SheetProblem {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var result []entities.SheetProblem
	for _, p := range s.catalog.Problems() {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if opts.Rating != nil && !p.InRatingBucket(*opts.Rating) {
			continue
		}

		solved := state.Solved.Has(p.ID)
		switch opts.Tab {
		case TabBookmarked:
			if !state.Bookmarked.Has(p.ID) {
				continue
			}
		case TabUnsolved:
			if solved {
				continue
			}
		}
		if opts.FocusMode && solved {
			continue
		}

		result = append(result, p)
	}
	return result
}

// TopicProgress reports solved vs total per topic, in sheet order.
func (s *SheetService) TopicProgress(state *entities.ProgressState) []TopicProgress {
	index := make(map[string]int)
	var result []TopicProgress

	for _, d := range s.catalog.Days() {
		i, ok := index[d.Topic]
		if !ok {
			i = len(result)
			index[d.Topic] = i
			result = append(result, TopicProgress{Topic: d.Topic})
		}
		for _, p := range d.Problems {
			result[i].Total++
			if state.Solved.Has(p.ID) {
				result[i].Solved++
			}
		}
	}

	for i := range result {
		result[i].Percentage = percent(result[i].Solved, result[i].Total)
	}
	return result
}

// SolvedByDifficulty counts the user's solved catalog problems by difficulty.
func (s *SheetService) SolvedByDifficulty(state *entities.ProgressState) entities.ProblemStats {
	var stats entities.ProblemStats
	for _, p := range s.catalog.Problems() {
		if state.Solved.Has(p.ID) {
			stats.Add(p.Difficulty)
		}
	}
	return stats
}

// RatingProgress reports progress inside a rating bucket.
// Without a rating it covers the whole sheet.
func (s *SheetService) RatingProgress(state *entities.ProgressState, rating *int) RatingProgress {
	if rating == nil {
		return RatingProgress{Current: len(state.Solved), Total: s.catalog.Total()}
	}

	var rp RatingProgress
	for _, p := range s.catalog.Problems() {
		if !p.InRatingBucket(*rating) {
			continue
		}
		rp.Total++
		if state.Solved.Has(p.ID) {
			rp.Current++
		}
	}
	return rp
}

// Completion is the share of catalog problems solved, as a rounded percentage.
func (s *SheetService) Completion(state *entities.ProgressState) int {
	solved := 0
	for _, p := range s.catalog.Problems() {
		if state.Solved.Has(p.ID) {
			solved++
		}
	}
	return percent(solved, s.catalog.Total())
}

// LastDays returns the n days ending at now, oldest first.
func LastDays(solves entities.DailySolves, n int, now time.Time) []DayActivity {
	if n <= 0 {
		return nil
	}
	days := make([]DayActivity, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := entities.DayOffset(now, -i)
		key := entities.DateKey(d)
		days = append(days, DayActivity{
			Date:  key,
			Label: d.Weekday().String()[:3],
			Count: solves.Count(key),
		})
	}
	return days
}

// FindBestDay returns the day with the most solves; ties go to the earliest date.
func FindBestDay(solves entities.DailySolves) BestDay {
	keys := make([]string, 0, len(solves))
	for k := range solves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var best BestDay
	for _, k := range keys {
		if solves[k] > best.Count {
			best = BestDay{Date: k, Count: solves[k]}
		}
	}
	return best
}

// percent rounds part/total*100 half up; an empty total yields 0.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
