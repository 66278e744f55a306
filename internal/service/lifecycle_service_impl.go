package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/google/uuid"
)

type lifecycleService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewLifecycleService creates the transactional status-change service.
func NewLifecycleService(uow db.UnitOfWork, observer UseCaseObserver) LifecycleService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &lifecycleService{uow: uow, observer: observer}
}

func (s *lifecycleService) Move(ctx context.Context, id string, to domain.EstimateStatus) (*domain.ClaimEstimate, error) {
	var result *domain.ClaimEstimate
	err := observe(ctx, s.observer, "estimate.move", map[string]any{"estimate_id": id, "to": string(to)}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)

			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			from := e.Status
			if err := e.ApplyTransition(to, now); err != nil {
				return err
			}
			// A carrier kickback counts as one revision cycle.
			if to == domain.StatusRevisionRequested {
				e.AddRevision(now)
			}

			ev := statusChangeEvent(e, from, to, now)
			if err := events.Append(ctx, ev); err != nil {
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

func (s *lifecycleService) Block(ctx context.Context, id string, bt domain.BlockerType, name, reason string) (*domain.ClaimEstimate, error) {
	if !domain.ValidBlockerType(bt) {
		return nil, &domain.ValidationError{Field: "blocker type", Value: string(bt), Reason: "unknown blocker type"}
	}

	var result *domain.ClaimEstimate
	err := observe(ctx, s.observer, "estimate.block", map[string]any{"estimate_id": id, "blocker_type": string(bt)}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			blockers := repository.NewSQLiteBlockerRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)

			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			from := e.Status
			if err := e.ApplyBlock(bt, name, reason, now); err != nil {
				return err
			}

			episode := &domain.Blocker{
				ID:          uuid.New().String(),
				EstimateID:  e.ID,
				EstimatorID: e.EstimatorID,
				FileNumber:  e.FileNumber,
				Type:        bt,
				Name:        name,
				Reason:      reason,
				BlockedAt:   now,
				Active:      true,
				CreatedAt:   now,
			}
			if err := blockers.Create(ctx, episode); err != nil {
				return err
			}

			ev := blockerEvent(e, domain.EventBlockerSet, from, domain.StatusBlocked, bt, name, reason, nil, now)
			if err := events.Append(ctx, ev); err != nil {
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

func (s *lifecycleService) Unblock(ctx context.Context, id string, note string) (*domain.ClaimEstimate, error) {
	var result *domain.ClaimEstimate
	err := observe(ctx, s.observer, "estimate.unblock", map[string]any{"estimate_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			estimates := repository.NewSQLiteEstimateRepo(tx)
			blockers := repository.NewSQLiteBlockerRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)

			e, err := estimates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !e.IsBlocked() {
				return domain.ErrNotBlocked
			}

			episode, err := blockers.GetActiveByEstimate(ctx, e.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("estimate %s is blocked: %w", e.ID, domain.ErrNoActiveBlocker)
				}
				return err
			}

			now := time.Now().UTC()
			duration := minutesSince(episode.BlockedAt, now)
			bt := episode.Type
			blockerName := episode.Name
			blockerReason := episode.Reason

			episode.Resolve(duration, note, now)
			if err := blockers.Update(ctx, episode); err != nil {
				return err
			}

			if err := e.ApplyUnblock(duration, now); err != nil {
				return err
			}

			ev := blockerEvent(e, domain.EventBlockerCleared, domain.StatusBlocked, e.Status, bt, blockerName, blockerReason, &duration, now)
			if err := events.Append(ctx, ev); err != nil {
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

func statusChangeEvent(e *domain.ClaimEstimate, from, to domain.EstimateStatus, now time.Time) *domain.EstimateEvent {
	f, t := from, to
	return &domain.EstimateEvent{
		ID:          uuid.New().String(),
		EstimateID:  e.ID,
		EstimatorID: e.EstimatorID,
		FileNumber:  e.FileNumber,
		Type:        domain.EventStatusChange,
		FromStatus:  &f,
		ToStatus:    &t,
		Description: fmt.Sprintf("moved from %s to %s", from.Label(), to.Label()),
		TriggeredBy: "user",
		CreatedAt:   now,
	}
}

func blockerEvent(e *domain.ClaimEstimate, kind domain.EventType, from, to domain.EstimateStatus, bt domain.BlockerType, name, reason string, duration *int, now time.Time) *domain.EstimateEvent {
	f, t := from, to
	desc := "blocked: " + bt.Label()
	if kind == domain.EventBlockerCleared {
		desc = "blocker cleared: " + bt.Label()
	}
	return &domain.EstimateEvent{
		ID:                     uuid.New().String(),
		EstimateID:             e.ID,
		EstimatorID:            e.EstimatorID,
		FileNumber:             e.FileNumber,
		Type:                   kind,
		FromStatus:             &f,
		ToStatus:               &t,
		BlockerType:            &bt,
		BlockerName:            &name,
		BlockerReason:          &reason,
		BlockerDurationMinutes: duration,
		Description:            desc,
		TriggeredBy:            "user",
		CreatedAt:              now,
	}
}
