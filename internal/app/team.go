package app

import (
	"time"

	"github.com/fdalton/claimtrack/internal/kpi"
)

type TeamReportRequest struct {
	WeekStart time.Time
	Now       *time.Time
}

type TeamMemberView struct {
	EstimatorID string
	DisplayName string
	Metrics     kpi.WeeklyMetrics
	Score       int
}

type TeamReportView struct {
	WeekStart time.Time
	WeekEnd   time.Time

	// Team metrics are computed over the union of all members' estimates, not
	// averaged across members.
	Team kpi.WeeklyMetrics

	// Members ordered by descending score.
	Members []TeamMemberView

	ActiveBlockers int
}
