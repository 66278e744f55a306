package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/google/uuid"
)

type estimateService struct {
	estimates repository.EstimateRepo
	events    repository.EventRepo
	carriers  repository.CarrierRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewEstimateService(
	estimates repository.EstimateRepo,
	events repository.EventRepo,
	carriers repository.CarrierRepo,
	uow db.UnitOfWork,
	observer UseCaseObserver,
) EstimateService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &estimateService{
		estimates: estimates,
		events:    events,
		carriers:  carriers,
		uow:       uow,
		observer:  observer,
	}
}

func (s *estimateService) Create(ctx context.Context, e *domain.ClaimEstimate) error {
	if strings.TrimSpace(e.FileNumber) == "" {
		return &domain.ValidationError{Field: "file number", Value: "", Reason: "must not be empty"}
	}
	if e.EstimatorID == "" {
		return &domain.ValidationError{Field: "estimator", Value: "", Reason: "must be set"}
	}
	if err := validateEdits(app.EstimateEdits{Severity: e.Severity, EstimateValue: e.EstimateValue, Peril: &e.Peril}); err != nil {
		return err
	}

	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = domain.StatusAssigned
	}
	if e.DateReceived.IsZero() {
		e.DateReceived = now
	}
	e.TotalMinutes = e.ActiveMinutes + e.BlockedMinutes
	e.CreatedAt = now
	e.UpdatedAt = now

	return observe(ctx, s.observer, "estimate.create", map[string]any{"file_number": e.FileNumber}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)
			carriers := repository.NewSQLiteCarrierRepo(tx)

			if err := carriers.Ensure(ctx, e.Carrier); err != nil {
				return err
			}
			if err := estimates.Create(ctx, e); err != nil {
				return err
			}
			to := e.Status
			return events.Append(ctx, &domain.EstimateEvent{
				ID:          uuid.New().String(),
				EstimateID:  e.ID,
				EstimatorID: e.EstimatorID,
				FileNumber:  e.FileNumber,
				Type:        domain.EventCreated,
				ToStatus:    &to,
				Description: "estimate created",
				TriggeredBy: "user",
				CreatedAt:   now,
			})
		})
	})
}

func (s *estimateService) GetByID(ctx context.Context, id string) (*domain.ClaimEstimate, error) {
	return s.estimates.GetByID(ctx, id)
}

func (s *estimateService) GetByFileNumber(ctx context.Context, fileNumber string) (*domain.ClaimEstimate, error) {
	return s.estimates.GetByFileNumber(ctx, fileNumber)
}

func (s *estimateService) List(ctx context.Context) ([]*domain.ClaimEstimate, error) {
	return s.estimates.List(ctx)
}

func (s *estimateService) ListOpen(ctx context.Context) ([]*domain.ClaimEstimate, error) {
	return s.estimates.ListOpen(ctx)
}

func (s *estimateService) ListByEstimator(ctx context.Context, estimatorID string) ([]*domain.ClaimEstimate, error) {
	return s.estimates.ListByEstimator(ctx, estimatorID)
}

// Edit applies a partial field update. Validation happens before anything is
// written, so a rejected edit leaves the stored estimate untouched.
func (s *estimateService) Edit(ctx context.Context, id string, edits app.EstimateEdits) (*domain.ClaimEstimate, error) {
	if err := validateEdits(edits); err != nil {
		return nil, err
	}

	var result *domain.ClaimEstimate
	err := observe(ctx, s.observer, "estimate.edit", map[string]any{"estimate_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)
			carriers := repository.NewSQLiteCarrierRepo(tx)

			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}

			changed := applyEdits(e, edits)
			if len(changed) == 0 {
				result = e
				return nil
			}
			if edits.Carrier != nil {
				if err := carriers.Ensure(ctx, *edits.Carrier); err != nil {
					return err
				}
			}

			now := time.Now().UTC()
			e.UpdatedAt = now
			if err := events.Append(ctx, &domain.EstimateEvent{
				ID:          uuid.New().String(),
				EstimateID:  e.ID,
				EstimatorID: e.EstimatorID,
				FileNumber:  e.FileNumber,
				Type:        domain.EventFieldEdit,
				Description: "edited " + strings.Join(changed, ", "),
				TriggeredBy: "user",
				CreatedAt:   now,
			}); err != nil {
				return err
			}
			if err := estimates.Update(ctx, e); err != nil {
				return err
			}
			result = e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *estimateService) LogTime(ctx context.Context, id string, hours float64, revision bool) error {
	if hours <= 0 {
		return &domain.ValidationError{Field: "hours", Value: fmt.Sprintf("%g", hours), Reason: "must be positive"}
	}
	minutes := hoursToMinutes(hours)
	if minutes == 0 {
		return &domain.ValidationError{Field: "hours", Value: fmt.Sprintf("%g", hours), Reason: "rounds to zero minutes"}
	}

	return observe(ctx, s.observer, "estimate.log_time", map[string]any{"estimate_id": id, "minutes": minutes, "revision": revision}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)

			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			if revision {
				err = e.AddRevisionMinutes(minutes, now)
			} else {
				err = e.AddActiveMinutes(minutes, now)
			}
			if err != nil {
				return err
			}
			return estimates.Update(ctx, e)
		})
	})
}

func (s *estimateService) AddRevision(ctx context.Context, id string) error {
	return observe(ctx, s.observer, "estimate.add_revision", map[string]any{"estimate_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			e.AddRevision(time.Now().UTC())
			return estimates.Update(ctx, e)
		})
	})
}

func (s *estimateService) RecordSettlement(ctx context.Context, id string, amount float64, settledAt time.Time) error {
	return observe(ctx, s.observer, "estimate.record_settlement", map[string]any{"estimate_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := e.RecordSettlement(amount, settledAt, time.Now().UTC()); err != nil {
				return err
			}
			return estimates.Update(ctx, e)
		})
	})
}

func (s *estimateService) ListEvents(ctx context.Context, id string) ([]*domain.EstimateEvent, error) {
	return s.events.ListByEstimate(ctx, id)
}

func (s *estimateService) ListCarriers(ctx context.Context) ([]string, error) {
	return s.carriers.ListVerified(ctx)
}

func validateEdits(edits app.EstimateEdits) error {
	if edits.Severity != nil && (*edits.Severity < 1 || *edits.Severity > 5) {
		return &domain.ValidationError{Field: "severity", Value: fmt.Sprintf("%d", *edits.Severity), Reason: "must be between 1 and 5"}
	}
	if edits.EstimateValue != nil && *edits.EstimateValue < 0 {
		return &domain.ValidationError{Field: "estimate value", Value: fmt.Sprintf("%g", *edits.EstimateValue), Reason: "must not be negative"}
	}
	if edits.Peril != nil && *edits.Peril != "" && !domain.ValidPerils[*edits.Peril] {
		return &domain.ValidationError{Field: "peril", Value: *edits.Peril, Reason: "unknown peril category"}
	}
	if edits.FileNumber != nil && strings.TrimSpace(*edits.FileNumber) == "" {
		return &domain.ValidationError{Field: "file number", Value: "", Reason: "must not be empty"}
	}
	return nil
}

// applyEdits copies set fields onto the estimate and returns the names of the
// fields that changed.
func applyEdits(e *domain.ClaimEstimate, edits app.EstimateEdits) []string {
	var changed []string
	setString := func(name string, dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = append(changed, name)
		}
	}
	setFloat := func(name string, dst **float64, src *float64) {
		if src != nil && (*dst == nil || **dst != *src) {
			v := *src
			*dst = &v
			changed = append(changed, name)
		}
	}

	setString("file number", &e.FileNumber, edits.FileNumber)
	setString("claim number", &e.ClaimNumber, edits.ClaimNumber)
	setString("policy number", &e.PolicyNumber, edits.PolicyNumber)
	setString("client", &e.ClientName, edits.ClientName)
	setString("carrier", &e.Carrier, edits.Carrier)
	setString("peril", &e.Peril, edits.Peril)
	setString("notes", &e.Notes, edits.Notes)
	if edits.Severity != nil && (e.Severity == nil || *e.Severity != *edits.Severity) {
		v := *edits.Severity
		e.Severity = &v
		changed = append(changed, "severity")
	}
	setFloat("estimate value", &e.EstimateValue, edits.EstimateValue)
	setFloat("rcv", &e.RCV, edits.RCV)
	setFloat("acv", &e.ACV, edits.ACV)
	setFloat("deductible", &e.Deductible, edits.Deductible)
	setFloat("net claim", &e.NetClaim, edits.NetClaim)
	if edits.DateReceived != nil && !e.DateReceived.Equal(*edits.DateReceived) {
		e.DateReceived = *edits.DateReceived
		changed = append(changed, "date received")
	}
	return changed
}
