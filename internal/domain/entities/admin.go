package entities

import "time"

// AdminTask is a curated daily problem published by an administrator.
type AdminTask struct {
	ID          string
	ProblemLink string
	ProblemName string
	Topic       string
	Difficulty  Difficulty
	Platform    Platform
	DateAdded   time.Time
	Notes       string
}

// AdminTaskPatch carries a partial update; nil fields are left untouched.
type AdminTaskPatch struct {
	ProblemLink *string
	ProblemName *string
	Topic       *string
	Difficulty  *Difficulty
	Platform    *Platform
	Notes       *string
}

// Apply copies the non-nil fields of patch onto t.
func (t *AdminTask) Apply(patch AdminTaskPatch) {
	if patch.ProblemLink != nil {
		t.ProblemLink = *patch.ProblemLink
	}
	if patch.ProblemName != nil {
		t.ProblemName = *patch.ProblemName
	}
	if patch.Topic != nil {
		t.Topic = *patch.Topic
	}
	if patch.Difficulty != nil {
		t.Difficulty = *patch.Difficulty
	}
	if patch.Platform != nil {
		t.Platform = *patch.Platform
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
}
