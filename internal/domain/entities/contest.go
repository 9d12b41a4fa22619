package entities

import (
	"fmt"
	"time"
)

// ContestStatus describes where a contest is relative to the current time.
type ContestStatus string

const (
	ContestUpcoming ContestStatus = "upcoming"
	ContestLive     ContestStatus = "live"
	ContestFinished ContestStatus = "finished"
)

// Contest is an entry of the contest tracker.
type Contest struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Platform        Platform  `json:"platform"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"duration"`
	URL             string    `json:"url"`
}

// End returns the moment the contest finishes.
func (c Contest) End() time.Time {
	return c.StartTime.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// Status derives the contest phase at now.
func (c Contest) Status(now time.Time) ContestStatus {
	switch {
	case now.Before(c.StartTime):
		return ContestUpcoming
	case now.Before(c.End()):
		return ContestLive
	default:
		return ContestFinished
	}
}

// Countdown is the remaining time until an event, split into units.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// TimeUntil returns the countdown from now to t, or zero once t has passed.
func TimeUntil(t, now time.Time) Countdown {
	diff := t.Sub(now)
	if diff <= 0 {
		return Countdown{}
	}

	total := int(diff / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// FormatDuration renders a contest length: "45m", "2h", "1h 30m", or whole days from 24h up.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	mins := minutes % 60
	if hours >= 24 {
		return fmt.Sprintf("%dd", hours/24)
	}
	if mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}
