package domain

import "time"

// ClaimEstimate is one insurance claim's valuation record being worked.
// Time bucket invariant: TotalMinutes == ActiveMinutes + BlockedMinutes.
type ClaimEstimate struct {
	ID           string
	FileNumber   string
	ClaimNumber  string
	PolicyNumber string
	EstimatorID  string
	ClientName   string
	Carrier      string

	Peril    string
	Severity *int // 1-5, nil when unset

	EstimateValue *float64
	RCV           *float64
	ACV           *float64
	Deductible    *float64
	NetClaim      *float64

	ActiveMinutes   int
	BlockedMinutes  int
	TotalMinutes    int
	RevisionMinutes int
	Revisions       int

	Status EstimateStatus

	// Current blocker episode. Non-nil/non-empty iff Status == StatusBlocked.
	CurrentBlockerType   *BlockerType
	CurrentBlockerName   string
	CurrentBlockerReason string
	CurrentBlockedAt     *time.Time

	ActualSettlement   *float64
	SettlementDate     *time.Time
	IsSettled          bool
	SettlementVariance *float64

	DateReceived      time.Time
	DateStarted       *time.Time
	DateCompleted     *time.Time
	DateSentToCarrier *time.Time
	DateClosed        *time.Time

	SLATargetHours *int
	SLABreached    bool

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyTransition moves the estimate along one allowed status edge and stamps
// the lifecycle dates for the target state. The blocked target is never
// reachable here; blocking has its own entry point (ApplyBlock). On failure
// the receiver is untouched.
func (e *ClaimEstimate) ApplyTransition(to EstimateStatus, now time.Time) error {
	if to == StatusBlocked || !CanTransition(e.Status, to) {
		return &InvalidTransitionError{From: e.Status, To: to}
	}

	e.Status = to
	switch to {
	case StatusInProgress:
		if e.DateStarted == nil {
			t := now
			e.DateStarted = &t
		}
	case StatusReview:
		if e.DateCompleted == nil {
			t := now
			e.DateCompleted = &t
		}
	case StatusSentToCarrier:
		if e.DateCompleted == nil {
			t := now
			e.DateCompleted = &t
		}
		// Re-sent files get a fresh carrier date on every send.
		t := now
		e.DateSentToCarrier = &t
	case StatusClosed:
		t := now
		e.DateClosed = &t
	}
	e.UpdatedAt = now
	return nil
}

// ApplyBlock marks the estimate blocked and records the current blocker
// episode. Accepted from any non-terminal, non-blocked state.
func (e *ClaimEstimate) ApplyBlock(bt BlockerType, name, reason string, now time.Time) error {
	if e.Status == StatusBlocked {
		return ErrAlreadyBlocked
	}
	if e.Status.IsTerminal() {
		return &InvalidTransitionError{From: e.Status, To: StatusBlocked}
	}

	e.Status = StatusBlocked
	e.CurrentBlockerType = &bt
	e.CurrentBlockerName = name
	e.CurrentBlockerReason = reason
	t := now
	e.CurrentBlockedAt = &t
	e.UpdatedAt = now
	return nil
}

// ApplyUnblock credits the resolved blocker's duration to the blocked bucket,
// clears the current blocker fields, and returns the estimate to in-progress.
// TotalMinutes is recomputed from the buckets, not incremented, so repeated
// episodes cannot drift.
func (e *ClaimEstimate) ApplyUnblock(durationMinutes int, now time.Time) error {
	if e.Status != StatusBlocked {
		return ErrNotBlocked
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	e.BlockedMinutes += durationMinutes
	e.TotalMinutes = e.ActiveMinutes + e.BlockedMinutes
	e.Status = StatusInProgress
	e.CurrentBlockerType = nil
	e.CurrentBlockerName = ""
	e.CurrentBlockerReason = ""
	e.CurrentBlockedAt = nil
	e.UpdatedAt = now
	return nil
}

// AddActiveMinutes accumulates worked time into the active bucket.
func (e *ClaimEstimate) AddActiveMinutes(minutes int, now time.Time) error {
	if minutes <= 0 {
		return &ValidationError{Field: "active minutes", Value: "", Reason: "must be positive"}
	}
	e.ActiveMinutes += minutes
	e.TotalMinutes = e.ActiveMinutes + e.BlockedMinutes
	e.UpdatedAt = now
	return nil
}

// AddRevisionMinutes accumulates rework time. Revision time counts toward the
// dollar-per-hour denominator but not toward the active/blocked buckets.
func (e *ClaimEstimate) AddRevisionMinutes(minutes int, now time.Time) error {
	if minutes <= 0 {
		return &ValidationError{Field: "revision minutes", Value: "", Reason: "must be positive"}
	}
	e.RevisionMinutes += minutes
	e.UpdatedAt = now
	return nil
}

// AddRevision bumps the revision counter.
func (e *ClaimEstimate) AddRevision(now time.Time) {
	e.Revisions++
	e.UpdatedAt = now
}

// RecordSettlement records the actual settlement outcome for the file.
func (e *ClaimEstimate) RecordSettlement(amount float64, settledAt time.Time, now time.Time) error {
	if amount < 0 {
		return &ValidationError{Field: "settlement", Value: "", Reason: "must not be negative"}
	}
	a := amount
	d := settledAt
	e.ActualSettlement = &a
	e.SettlementDate = &d
	e.IsSettled = true
	if e.EstimateValue != nil {
		v := amount - *e.EstimateValue
		e.SettlementVariance = &v
	}
	e.UpdatedAt = now
	return nil
}

// IsBlocked reports whether the estimate is currently in a blocker episode.
func (e *ClaimEstimate) IsBlocked() bool {
	return e.Status == StatusBlocked
}
