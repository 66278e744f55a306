package repository

import (
	"context"
	"errors"

	"github.com/fdalton/claimtrack/internal/domain"
)

// ErrNotFound is returned when a referenced record does not exist. Callers
// test with errors.Is; implementations wrap it with the record kind.
var ErrNotFound = errors.New("not found")

type EstimateRepo interface {
	Create(ctx context.Context, e *domain.ClaimEstimate) error
	GetByID(ctx context.Context, id string) (*domain.ClaimEstimate, error)
	// GetByFileNumber returns the most recently received estimate carrying the
	// file number. File numbers are a display-level natural key, not unique.
	GetByFileNumber(ctx context.Context, fileNumber string) (*domain.ClaimEstimate, error)
	List(ctx context.Context) ([]*domain.ClaimEstimate, error)
	ListByEstimator(ctx context.Context, estimatorID string) ([]*domain.ClaimEstimate, error)
	ListOpen(ctx context.Context) ([]*domain.ClaimEstimate, error)
	Update(ctx context.Context, e *domain.ClaimEstimate) error
	Delete(ctx context.Context, id string) error
}

type BlockerRepo interface {
	Create(ctx context.Context, b *domain.Blocker) error
	// GetActiveByEstimate returns the single active blocker for the estimate,
	// or ErrNotFound when none is active.
	GetActiveByEstimate(ctx context.Context, estimateID string) (*domain.Blocker, error)
	ListByEstimate(ctx context.Context, estimateID string) ([]*domain.Blocker, error)
	ListActive(ctx context.Context) ([]*domain.Blocker, error)
	Update(ctx context.Context, b *domain.Blocker) error
}

type EventRepo interface {
	Append(ctx context.Context, ev *domain.EstimateEvent) error
	ListByEstimate(ctx context.Context, estimateID string) ([]*domain.EstimateEvent, error)
}

type EstimatorRepo interface {
	Create(ctx context.Context, p *domain.EstimatorProfile) error
	GetByID(ctx context.Context, id string) (*domain.EstimatorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.EstimatorProfile, error)
	ListActive(ctx context.Context) ([]*domain.EstimatorProfile, error)
	Update(ctx context.Context, p *domain.EstimatorProfile) error
}

type CarrierRepo interface {
	// Ensure upserts the carrier by name; existing rows are left untouched,
	// new rows start unverified.
	Ensure(ctx context.Context, name string) error
	ListVerified(ctx context.Context) ([]string, error)
}
