package entities

import (
	"encoding/json"
	"sort"
	"time"
)

// StringSet is an unordered set of problem identifiers.
type StringSet map[string]struct{}

// NewStringSet builds a set from ids.
func NewStringSet(ids ...string) StringSet {
	s := make(StringSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s StringSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership of id and reports whether id is now present.
func (s StringSet) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DailySolves maps an ISO calendar day to the net number of solves made that day.
type DailySolves map[string]int

// Count returns the bucket for key; absent days count as zero.
func (d DailySolves) Count(key string) int {
	return d[key]
}

// ProgressState is the complete mutable record of one user's practice.
type ProgressState struct {
	Solved        StringSet
	Attempted     StringSet
	Bookmarked    StringSet
	Streak        int    // incremental streak, updated only when a problem becomes solved
	LastSolveDate string // YYYY-MM-DD of the latest solve, empty when none
	DailySolves   DailySolves
}

// NewProgressState returns an empty state.
func NewProgressState() *ProgressState {
	return &ProgressState{
		Solved:      StringSet{},
		Attempted:   StringSet{},
		Bookmarked:  StringSet{},
		DailySolves: DailySolves{},
	}
}

// ToggleSolved flips the solved membership of id and updates today's bucket.
//
// Becoming solved:
//  1. id leaves the attempted set.
//  2. Today's bucket grows by one.
//  3. The incremental streak advances: unchanged if a solve was already recorded
//     today, +1 if the previous solve was yesterday, otherwise reset to 1.
//
// Becoming unsolved only shrinks today's bucket, never below zero, and adds no
// bucket for a day without one. The streak and last solve date stay as they were.
func (p *ProgressState) ToggleSolved(id string, now time.Time) bool {
	p.ensure()

	today := DateKey(now)
	solved := p.Solved.Toggle(id)

	if !solved {
		n, ok := p.DailySolves[today]
		switch {
		case !ok:
		case n > 1:
			p.DailySolves[today] = n - 1
		default:
			p.DailySolves[today] = 0
		}
		return false
	}

	delete(p.Attempted, id)
	p.DailySolves[today]++

	if p.LastSolveDate != today {
		if p.LastSolveDate == DateKey(DayOffset(now, -1)) {
			p.Streak++
		} else {
			p.Streak = 1
		}
	}
	p.LastSolveDate = today

	return true
}

// ToggleAttempted flips the attempted membership of id unless it is already solved.
// It reports whether id is attempted afterwards.
func (p *ProgressState) ToggleAttempted(id string) bool {
	p.ensure()

	if p.Solved.Has(id) {
		return false
	}
	return p.Attempted.Toggle(id)
}

// ToggleBookmark flips the bookmark of id and reports whether it is now bookmarked.
func (p *ProgressState) ToggleBookmark(id string) bool {
	p.ensure()
	return p.Bookmarked.Toggle(id)
}

// MergeSolved adds externally solved ids without touching daily buckets or the streak.
// It returns how many ids were newly added.
func (p *ProgressState) MergeSolved(ids []string) int {
	p.ensure()

	added := 0
	for _, id := range ids {
		if p.Solved.Has(id) {
			continue
		}
		p.Solved[id] = struct{}{}
		delete(p.Attempted, id)
		added++
	}
	return added
}

// Reset clears every collection and counter.
func (p *ProgressState) Reset() {
	*p = *NewProgressState()
}

// Clone returns a deep copy safe to hand out as a read-only snapshot.
func (p *ProgressState) Clone() *ProgressState {
	c := &ProgressState{
		Solved:        make(StringSet, len(p.Solved)),
		Attempted:     make(StringSet, len(p.Attempted)),
		Bookmarked:    make(StringSet, len(p.Bookmarked)),
		Streak:        p.Streak,
		LastSolveDate: p.LastSolveDate,
		DailySolves:   make(DailySolves, len(p.DailySolves)),
	}
	for id := range p.Solved {
		c.Solved[id] = struct{}{}
	}
	for id := range p.Attempted {
		c.Attempted[id] = struct{}{}
	}
	for id := range p.Bookmarked {
		c.Bookmarked[id] = struct{}{}
	}
	for k, v := range p.DailySolves {
		c.DailySolves[k] = v
	}
	return c
}

func (p *ProgressState) ensure() {
	if p.Solved == nil {
		p.Solved = StringSet{}
	}
	if p.Attempted == nil {
		p.Attempted = StringSet{}
	}
	if p.Bookmarked == nil {
		p.Bookmarked = StringSet{}
	}
	if p.DailySolves == nil {
		p.DailySolves = DailySolves{}
	}
}

// progressDocument is the persisted JSON layout of a ProgressState.
// The *Problems keys are read for documents written by older clients.
type progressDocument struct {
	Solved        []string       `json:"solved"`
	Attempted     []string       `json:"attempted"`
	Bookmarked    []string       `json:"bookmarked"`
	Streak        int            `json:"streak"`
	LastSolveDate *string        `json:"lastSolveDate"`
	DailySolves   map[string]int `json:"dailySolves"`

	LegacySolved     []string `json:"solvedProblems,omitempty"`
	LegacyAttempted  []string `json:"attemptedProblems,omitempty"`
	LegacyBookmarked []string `json:"bookmarkedProblems,omitempty"`
}

// MarshalJSON writes the sets as sorted lists.
func (p ProgressState) MarshalJSON() ([]byte, error) {
	doc := progressDocument{
		Solved:      p.Solved.Sorted(),
		Attempted:   p.Attempted.Sorted(),
		Bookmarked:  p.Bookmarked.Sorted(),
		Streak:      p.Streak,
		DailySolves: p.DailySolves,
	}
	if doc.DailySolves == nil {
		doc.DailySolves = map[string]int{}
	}
	if p.LastSolveDate != "" {
		last := p.LastSolveDate
		doc.LastSolveDate = &last
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a persisted document; absent keys become empty values.
func (p *ProgressState) UnmarshalJSON(data []byte) error {
	var doc progressDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	state := NewProgressState()
	state.Solved = NewStringSet(append(doc.Solved, doc.LegacySolved...)...)
	state.Attempted = NewStringSet(append(doc.Attempted, doc.LegacyAttempted...)...)
	state.Bookmarked = NewStringSet(append(doc.Bookmarked, doc.LegacyBookmarked...)...)
	state.Streak = doc.Streak
	if doc.LastSolveDate != nil {
		state.LastSolveDate = *doc.LastSolveDate
	}
	for k, v := range doc.DailySolves {
		state.DailySolves[k] = v
	}

	*p = *state
	return nil
}
