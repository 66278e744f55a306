package importer

import (
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/google/uuid"
)

// Batch holds converted domain objects ready for persistence. Estimates
// reference profiles through EstimatorByUserID so the persistence layer can
// substitute pre-existing profile ids.
type Batch struct {
	Estimators []*domain.EstimatorProfile
	Estimates  []*domain.ClaimEstimate

	// EstimateOwners maps estimate index to the owning user_id.
	EstimateOwners []string
}

// Convert transforms a validated BatchImport into domain objects. Call
// ValidateBatch first; Convert assumes the batch is valid.
func Convert(batch *BatchImport) (*Batch, error) {
	now := time.Now().UTC()
	out := &Batch{}

	for _, est := range batch.Estimators {
		p := &domain.EstimatorProfile{
			ID:                     uuid.New().String(),
			UserID:                 est.UserID,
			DisplayName:            est.DisplayName,
			Active:                 true,
			TargetDollarsPerHour:   est.TargetDollarsPerHour,
			TargetEstimatesPerWeek: est.TargetEstimatesPerWeek,
			TargetMaxRevisionRate:  est.TargetMaxRevisionRate,
			TargetMaxCycleDays:     est.TargetMaxCycleDays,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		out.Estimators = append(out.Estimators, p)
	}

	for _, imp := range batch.Estimates {
		received, err := time.Parse("2006-01-02", imp.DateReceived)
		if err != nil {
			return nil, fmt.Errorf("parsing date_received: %w", err)
		}

		status := domain.EstimateStatus(imp.Status)
		if imp.Status == "" {
			status = domain.StatusAssigned
		}

		e := &domain.ClaimEstimate{
			ID:              uuid.New().String(),
			FileNumber:      imp.FileNumber,
			ClaimNumber:     imp.ClaimNumber,
			PolicyNumber:    imp.PolicyNumber,
			ClientName:      imp.ClientName,
			Carrier:         imp.Carrier,
			Peril:           imp.Peril,
			Severity:        imp.Severity,
			EstimateValue:   imp.EstimateValue,
			RCV:             imp.RCV,
			ACV:             imp.ACV,
			Deductible:      imp.Deductible,
			NetClaim:        imp.NetClaim,
			Status:          status,
			ActiveMinutes:   imp.ActiveMinutes,
			BlockedMinutes:  imp.BlockedMinutes,
			TotalMinutes:    imp.ActiveMinutes + imp.BlockedMinutes,
			RevisionMinutes: imp.RevisionMinutes,
			Revisions:       imp.Revisions,
			DateReceived:    received,
			Notes:           imp.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		e.DateStarted = parseOptionalDate(imp.DateStarted)
		e.DateCompleted = parseOptionalDate(imp.DateCompleted)
		e.DateSentToCarrier = parseOptionalDate(imp.DateSentToCarrier)
		e.DateClosed = parseOptionalDate(imp.DateClosed)

		out.Estimates = append(out.Estimates, e)
		out.EstimateOwners = append(out.EstimateOwners, imp.Estimator)
	}
	return out, nil
}

// parseOptionalDate parses a YYYY-MM-DD pointer, returning nil for nil input
// or parse failure. Validation has already rejected malformed dates.
func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
