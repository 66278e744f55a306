// Package app holds the request and view structs passed between the service
// layer and its callers. Views are plain data: no behavior, no persistence.
package app

import (
	"time"

	"github.com/fdalton/claimtrack/internal/kpi"
)

type ScorecardRequest struct {
	// EstimatorID or UserID selects the estimator; EstimatorID wins when both
	// are set.
	EstimatorID string
	UserID      string

	// WeekStart anchors the reporting window. Zero means the current week.
	WeekStart time.Time

	// Now overrides the clock for days-held math. Nil means time.Now.
	Now *time.Time
}

type TargetComparison struct {
	Label  string
	Actual float64
	Target float64
	Met    bool
}

type ScorecardView struct {
	EstimatorID string
	DisplayName string

	WeekStart time.Time
	WeekEnd   time.Time

	Metrics kpi.WeeklyMetrics
	Score   int

	Recommendations []kpi.Recommendation

	// Comparisons against the estimator's personal targets, present only for
	// targets the profile actually sets.
	Targets []TargetComparison

	OpenCount    int
	BlockedCount int
}
