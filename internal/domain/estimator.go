package domain

import "time"

// EstimatorProfile is a person producing claim estimates, with optional
// per-estimator performance targets used by the scorecard.
type EstimatorProfile struct {
	ID          string
	UserID      string
	DisplayName string
	Active      bool

	TargetDollarsPerHour   *float64
	TargetEstimatesPerWeek *int
	TargetMaxRevisionRate  *float64
	TargetMaxCycleDays     *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
