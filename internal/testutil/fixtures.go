package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/google/uuid"
)

var testFileCounter atomic.Int64

// Estimator options
type EstimatorOption func(*domain.EstimatorProfile)

func WithUserID(userID string) EstimatorOption {
	return func(p *domain.EstimatorProfile) {
		p.UserID = userID
	}
}

func WithTargetDollarsPerHour(v float64) EstimatorOption {
	return func(p *domain.EstimatorProfile) {
		p.TargetDollarsPerHour = &v
	}
}

func WithInactive() EstimatorOption {
	return func(p *domain.EstimatorProfile) {
		p.Active = false
	}
}

func NewTestEstimator(displayName string, opts ...EstimatorOption) *domain.EstimatorProfile {
	now := time.Now().UTC()
	p := &domain.EstimatorProfile{
		ID:          uuid.New().String(),
		UserID:      uuid.New().String(),
		DisplayName: displayName,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Estimate options
type EstimateOption func(*domain.ClaimEstimate)

func WithStatus(s domain.EstimateStatus) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.Status = s
	}
}

func WithSeverity(s int) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.Severity = &s
	}
}

func WithEstimateValue(v float64) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.EstimateValue = &v
	}
}

func WithActiveMinutes(m int) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.ActiveMinutes = m
		e.TotalMinutes = e.ActiveMinutes + e.BlockedMinutes
	}
}

func WithRevisionMinutes(m int) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.RevisionMinutes = m
	}
}

func WithRevisions(n int) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.Revisions = n
	}
}

func WithDateReceived(d time.Time) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.DateReceived = d
	}
}

func WithDateSentToCarrier(d time.Time) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.DateSentToCarrier = &d
	}
}

func WithCarrier(name string) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.Carrier = name
	}
}

func WithFileNumber(fn string) EstimateOption {
	return func(e *domain.ClaimEstimate) {
		e.FileNumber = fn
	}
}

func defaultFileNumber() string {
	return fmt.Sprintf("CLM-%04d", testFileCounter.Add(1))
}

func NewTestEstimate(estimatorID string, opts ...EstimateOption) *domain.ClaimEstimate {
	now := time.Now().UTC()
	e := &domain.ClaimEstimate{
		ID:           uuid.New().String(),
		FileNumber:   defaultFileNumber(),
		EstimatorID:  estimatorID,
		ClientName:   "Test Client",
		Carrier:      "Test Mutual",
		Peril:        "wind",
		Status:       domain.StatusAssigned,
		DateReceived: now.AddDate(0, 0, -2),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Blocker options
type BlockerOption func(*domain.Blocker)

func WithBlockerType(bt domain.BlockerType) BlockerOption {
	return func(b *domain.Blocker) {
		b.Type = bt
	}
}

func WithBlockedAt(at time.Time) BlockerOption {
	return func(b *domain.Blocker) {
		b.BlockedAt = at
	}
}

func NewTestBlocker(e *domain.ClaimEstimate, opts ...BlockerOption) *domain.Blocker {
	now := time.Now().UTC()
	b := &domain.Blocker{
		ID:          uuid.New().String(),
		EstimateID:  e.ID,
		EstimatorID: e.EstimatorID,
		FileNumber:  e.FileNumber,
		Type:        domain.BlockerCarrier,
		Name:        "Test Adjuster",
		Reason:      "waiting on documents",
		BlockedAt:   now,
		Active:      true,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
