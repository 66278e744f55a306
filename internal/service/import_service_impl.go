package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/importer"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/google/uuid"
)

// ImportResult summarizes a completed batch import.
type ImportResult struct {
	EstimatorsCreated int
	EstimatorsReused  int
	EstimatesCreated  int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportBatch(ctx context.Context, batch *importer.BatchImport) (*ImportResult, error)
}

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observer UseCaseObserver) ImportService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &importService{uow: uow, observer: observer}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	batch, err := importer.LoadBatchImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportBatch(ctx, batch)
}

// ImportBatch validates, converts, and persists the whole batch in one
// transaction. Estimators already present (matched by user_id) are reused;
// any error rolls back everything.
func (s *importService) ImportBatch(ctx context.Context, batch *importer.BatchImport) (*ImportResult, error) {
	if errs := importer.ValidateBatch(batch); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(batch)
	if err != nil {
		return nil, fmt.Errorf("converting import batch: %w", err)
	}

	result := &ImportResult{}
	err = observe(ctx, s.observer, "import.batch", map[string]any{"estimates": len(converted.Estimates)}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			profiles := repository.NewSQLiteEstimatorRepo(tx)
			estimates := repository.NewSQLiteEstimateRepo(tx)
			events := repository.NewSQLiteEventRepo(tx)
			carriers := repository.NewSQLiteCarrierRepo(tx)

			profileIDs := make(map[string]string) // user_id -> profile id
			for _, p := range converted.Estimators {
				existing, err := profiles.GetByUserID(ctx, p.UserID)
				switch {
				case err == nil:
					profileIDs[p.UserID] = existing.ID
					result.EstimatorsReused++
				case errors.Is(err, repository.ErrNotFound):
					if err := profiles.Create(ctx, p); err != nil {
						return fmt.Errorf("creating estimator %q: %w", p.DisplayName, err)
					}
					profileIDs[p.UserID] = p.ID
					result.EstimatorsCreated++
				default:
					return err
				}
			}

			for i, e := range converted.Estimates {
				owner := converted.EstimateOwners[i]
				profileID, ok := profileIDs[owner]
				if !ok {
					existing, err := profiles.GetByUserID(ctx, owner)
					if err != nil {
						return fmt.Errorf("estimate %s references unknown estimator %q: %w", e.FileNumber, owner, err)
					}
					profileID = existing.ID
					profileIDs[owner] = profileID
				}
				e.EstimatorID = profileID

				if err := carriers.Ensure(ctx, e.Carrier); err != nil {
					return err
				}
				if err := estimates.Create(ctx, e); err != nil {
					return fmt.Errorf("creating estimate %s: %w", e.FileNumber, err)
				}
				to := e.Status
				if err := events.Append(ctx, &domain.EstimateEvent{
					ID:          uuid.New().String(),
					EstimateID:  e.ID,
					EstimatorID: e.EstimatorID,
					FileNumber:  e.FileNumber,
					Type:        domain.EventCreated,
					ToStatus:    &to,
					Description: "imported",
					TriggeredBy: "import",
					CreatedAt:   e.CreatedAt,
				}); err != nil {
					return err
				}
				result.EstimatesCreated++
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
