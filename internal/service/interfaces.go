package service

import (
	"context"
	"time"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/domain"
)

type EstimateService interface {
	Create(ctx context.Context, e *domain.ClaimEstimate) error
	GetByID(ctx context.Context, id string) (*domain.ClaimEstimate, error)
	GetByFileNumber(ctx context.Context, fileNumber string) (*domain.ClaimEstimate, error)
	List(ctx context.Context) ([]*domain.ClaimEstimate, error)
	ListOpen(ctx context.Context) ([]*domain.ClaimEstimate, error)
	ListByEstimator(ctx context.Context, estimatorID string) ([]*domain.ClaimEstimate, error)
	Edit(ctx context.Context, id string, edits app.EstimateEdits) (*domain.ClaimEstimate, error)
	// LogTime credits worked hours to the estimate. Revision time feeds the
	// dollar-per-hour denominator without touching the active bucket.
	LogTime(ctx context.Context, id string, hours float64, revision bool) error
	AddRevision(ctx context.Context, id string) error
	RecordSettlement(ctx context.Context, id string, amount float64, settledAt time.Time) error
	ListEvents(ctx context.Context, id string) ([]*domain.EstimateEvent, error)
	// ListCarriers returns verified carrier names for intake suggestions.
	ListCarriers(ctx context.Context) ([]string, error)
}

// LifecycleService owns every status change. Each operation runs in one
// transaction covering the estimate, its blocker episode rows, and the audit
// event, so a failure leaves no partial state behind.
type LifecycleService interface {
	Move(ctx context.Context, id string, to domain.EstimateStatus) (*domain.ClaimEstimate, error)
	Block(ctx context.Context, id string, bt domain.BlockerType, name, reason string) (*domain.ClaimEstimate, error)
	Unblock(ctx context.Context, id string, note string) (*domain.ClaimEstimate, error)
}

type EstimatorService interface {
	Create(ctx context.Context, p *domain.EstimatorProfile) error
	GetByID(ctx context.Context, id string) (*domain.EstimatorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.EstimatorProfile, error)
	ListActive(ctx context.Context) ([]*domain.EstimatorProfile, error)
	Update(ctx context.Context, p *domain.EstimatorProfile) error
}

type ReportService interface {
	Scorecard(ctx context.Context, req app.ScorecardRequest) (*app.ScorecardView, error)
	TeamReport(ctx context.Context, req app.TeamReportRequest) (*app.TeamReportView, error)
}
