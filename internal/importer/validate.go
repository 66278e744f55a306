package importer

import (
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
)

// ValidateBatch checks the import file for errors before conversion. Returns
// a slice of all validation errors found.
func ValidateBatch(batch *BatchImport) []error {
	var errs []error

	userIDs := make(map[string]bool)
	for i, est := range batch.Estimators {
		prefix := fmt.Sprintf("estimators[%d]", i)
		if est.UserID == "" {
			errs = append(errs, fmt.Errorf("%s.user_id is required", prefix))
		} else if userIDs[est.UserID] {
			errs = append(errs, fmt.Errorf("%s.user_id %q is duplicated", prefix, est.UserID))
		}
		userIDs[est.UserID] = true
		if est.DisplayName == "" {
			errs = append(errs, fmt.Errorf("%s.display_name is required", prefix))
		}
		if est.TargetDollarsPerHour != nil && *est.TargetDollarsPerHour <= 0 {
			errs = append(errs, fmt.Errorf("%s.target_dollars_per_hour must be positive", prefix))
		}
		if est.TargetEstimatesPerWeek != nil && *est.TargetEstimatesPerWeek <= 0 {
			errs = append(errs, fmt.Errorf("%s.target_estimates_per_week must be positive", prefix))
		}
	}

	if len(batch.Estimates) == 0 {
		errs = append(errs, fmt.Errorf("estimates must not be empty"))
	}
	for i, e := range batch.Estimates {
		errs = append(errs, validateEstimate(fmt.Sprintf("estimates[%d]", i), &e)...)
	}
	return errs
}

func validateEstimate(prefix string, e *EstimateImport) []error {
	var errs []error

	if e.FileNumber == "" {
		errs = append(errs, fmt.Errorf("%s.file_number is required", prefix))
	}
	if e.Estimator == "" {
		errs = append(errs, fmt.Errorf("%s.estimator is required", prefix))
	}
	if e.Status != "" {
		status := domain.EstimateStatus(e.Status)
		if !domain.ValidStatus(status) {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, e.Status))
		} else if status == domain.StatusBlocked {
			// Imports cannot reconstruct a blocker episode; import the file
			// as in-progress and block it afterwards.
			errs = append(errs, fmt.Errorf("%s.status: %q cannot be imported directly", prefix, e.Status))
		}
	}
	if e.Severity != nil && (*e.Severity < 1 || *e.Severity > 5) {
		errs = append(errs, fmt.Errorf("%s.severity must be between 1 and 5", prefix))
	}
	if e.EstimateValue != nil && *e.EstimateValue < 0 {
		errs = append(errs, fmt.Errorf("%s.estimate_value must not be negative", prefix))
	}
	if e.Peril != "" && !domain.ValidPerils[e.Peril] {
		errs = append(errs, fmt.Errorf("%s.peril: invalid value %q", prefix, e.Peril))
	}
	if e.ActiveMinutes < 0 || e.BlockedMinutes < 0 || e.RevisionMinutes < 0 {
		errs = append(errs, fmt.Errorf("%s: minute buckets must not be negative", prefix))
	}
	if e.Revisions < 0 {
		errs = append(errs, fmt.Errorf("%s.revisions must not be negative", prefix))
	}

	if e.DateReceived == "" {
		errs = append(errs, fmt.Errorf("%s.date_received is required", prefix))
	} else if _, err := time.Parse("2006-01-02", e.DateReceived); err != nil {
		errs = append(errs, fmt.Errorf("%s.date_received: invalid date format %q (expected YYYY-MM-DD)", prefix, e.DateReceived))
	}
	for name, v := range map[string]*string{
		"date_started":         e.DateStarted,
		"date_completed":       e.DateCompleted,
		"date_sent_to_carrier": e.DateSentToCarrier,
		"date_closed":          e.DateClosed,
	} {
		if v == nil {
			continue
		}
		if _, err := time.Parse("2006-01-02", *v); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: invalid date format %q (expected YYYY-MM-DD)", prefix, name, *v))
		}
	}
	return errs
}
