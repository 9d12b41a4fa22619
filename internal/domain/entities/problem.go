package entities

// Platform identifies the judge a problem is hosted on.
type Platform string

const (
	PlatformCodeforces Platform = "codeforces"
	PlatformCodeChef   Platform = "codechef"
	PlatformLeetCode   Platform = "leetcode"
	PlatformAtCoder    Platform = "atcoder"
)

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformCodeforces, PlatformCodeChef, PlatformLeetCode, PlatformAtCoder:
		return true
	}
	return false
}

// Difficulty is the coarse difficulty tag of a catalog problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty tags.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem is a single practice problem from the static catalog.
type Problem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Link       string     `json:"link"`
	Platform   Platform   `json:"platform"`
	Difficulty Difficulty `json:"difficulty"`
	Rating     *int       `json:"rating,omitempty"` // nil when the problem has no numeric rating
}

// InRatingBucket reports whether the problem rating falls into [rating, rating+100).
// Problems without a rating never match.
func (p Problem) InRatingBucket(rating int) bool {
	if p.Rating == nil {
		return false
	}
	return *p.Rating >= rating && *p.Rating < rating+100
}

// DayPlan groups the problems scheduled for one day of the sheet.
type DayPlan struct {
	Day         int       `json:"day"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Problems    []Problem `json:"problems"`
}

// SheetProblem is a catalog problem flattened together with its day number.
type SheetProblem struct {
	Problem
	Day int `json:"day"`
}

// ProblemStats aggregates catalog problems by difficulty.
type ProblemStats struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
	Total  int `json:"total"`
}

// Add counts one problem of difficulty d.
func (s *ProblemStats) Add(d Difficulty) {
	switch d {
	case DifficultyEasy:
		s.Easy++
	case DifficultyMedium:
		s.Medium++
	default:
		s.Hard++
	}
	s.Total++
}
