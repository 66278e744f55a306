package domain

import "time"

// Blocker records one blocking episode for an estimate. At most one blocker
// per estimate may be active at any time.
type Blocker struct {
	ID          string
	EstimateID  string
	EstimatorID string
	FileNumber  string

	Type   BlockerType
	Name   string
	Reason string

	BlockedAt       time.Time
	ResolvedAt      *time.Time
	DurationMinutes *int
	Active          bool
	ResolutionNote  string

	CreatedAt time.Time
}

// Resolve closes the episode, stamping the resolution time and duration.
func (b *Blocker) Resolve(durationMinutes int, note string, now time.Time) {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	t := now
	d := durationMinutes
	b.ResolvedAt = &t
	b.DurationMinutes = &d
	b.Active = false
	b.ResolutionNote = note
}
