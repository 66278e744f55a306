package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
)

// Scoring weights and normalization anchors for the overall performance score.
// Anchors come from department targets: $15k/hr is a maxed dollar-hour score,
// 2+ revisions per estimate zeroes the revision score, 3+ days held zeroes the
// efficiency score.
const (
	dollarHourAnchor = 15000.0
	revisionAnchor   = 2.0
	daysHeldAnchor   = 3.0
	weightDollarHour = 40.0
	weightRevisions  = 30.0
	weightApproval   = 20.0
	weightEfficiency = 10.0
)

// RankedEstimator pairs an estimator with their metrics and overall score.
type RankedEstimator struct {
	EstimatorID string
	Metrics     WeeklyMetrics
	Score       int
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// OverallScore reduces weekly metrics to a 0-100 ranking score. Each sub-score
// is clamped to its contribution range before summing. The result is for
// ranking and display only.
func OverallScore(m WeeklyMetrics) int {
	dollarHourScore := clamp01(m.DollarPerHour/dollarHourAnchor) * weightDollarHour
	revisionScore := clamp01((revisionAnchor-m.RevisionRate)/revisionAnchor) * weightRevisions
	approvalScore := m.FirstTimeApprovalRate / 100 * weightApproval
	efficiencyScore := clamp01((daysHeldAnchor-m.AvgDaysHeld)/daysHeldAnchor) * weightEfficiency

	return int(math.Round(dollarHourScore + revisionScore + approvalScore + efficiencyScore))
}

// Rank scores every estimator and orders them by descending overall score.
// Ties break by estimator id ascending so the ordering is deterministic.
func Rank(perEstimator map[string][]domain.ClaimEstimate, now time.Time) []RankedEstimator {
	ranked := make([]RankedEstimator, 0, len(perEstimator))
	for id, entries := range perEstimator {
		m := Compute(entries, now)
		ranked = append(ranked, RankedEstimator{
			EstimatorID: id,
			Metrics:     m,
			Score:       OverallScore(m),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].EstimatorID < ranked[j].EstimatorID
	})
	return ranked
}
