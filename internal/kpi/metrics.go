// Package kpi computes weekly productivity metrics over claim estimates.
// All functions are pure: they never mutate their inputs and never fail on
// well-typed input.
package kpi

import (
	"math"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
)

// WeeklyMetrics is a per-estimator (or team-wide) aggregate, recomputed on
// demand and never persisted.
type WeeklyMetrics struct {
	AvgDaysHeld           float64
	RevisionRate          float64 // mean revisions per estimate, not a percentage
	FirstTimeApprovalRate float64 // 0-100
	DollarPerHour         float64
	TotalEstimates        int

	SeverityBreakdown   map[int]int     // count per severity 1-5
	AvgTimePerSeverity  map[int]float64 // mean active hours per severity
	AvgValuePerSeverity map[int]float64 // mean estimate value per severity
}

func emptySeverityCounts() map[int]int {
	return map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}

func emptySeverityMeans() map[int]float64 {
	return map[int]float64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}

// zeroMetrics is what an empty valid set yields: every rate and count zero,
// never a division-by-zero failure.
func zeroMetrics() WeeklyMetrics {
	return WeeklyMetrics{
		SeverityBreakdown:   emptySeverityCounts(),
		AvgTimePerSeverity:  emptySeverityMeans(),
		AvgValuePerSeverity: emptySeverityMeans(),
	}
}

// isValid reports whether an entry participates in the computed ratios.
// Entries missing severity, active time, or estimate value are excluded from
// every ratio but must never cause a failure.
func isValid(e *domain.ClaimEstimate) bool {
	return e.Severity != nil && *e.Severity >= 1 && *e.Severity <= 5 &&
		e.ActiveMinutes > 0 &&
		e.EstimateValue != nil
}

// Compute folds a collection of estimates into weekly metrics. now anchors the
// days-held computation against each entry's received date.
func Compute(entries []domain.ClaimEstimate, now time.Time) WeeklyMetrics {
	var valid []*domain.ClaimEstimate
	for i := range entries {
		if isValid(&entries[i]) {
			valid = append(valid, &entries[i])
		}
	}
	if len(valid) == 0 {
		return zeroMetrics()
	}
	n := float64(len(valid))

	var totalDaysHeld float64
	for _, e := range valid {
		days := math.Ceil(now.Sub(e.DateReceived).Hours() / 24)
		// Future-dated entries clamp to zero rather than going negative.
		totalDaysHeld += math.Max(days, 0)
	}

	var totalRevisions int
	var firstTimeApprovals int
	for _, e := range valid {
		totalRevisions += e.Revisions
		if e.Revisions == 0 {
			firstTimeApprovals++
		}
	}

	var totalValue, totalHours float64
	for _, e := range valid {
		totalValue += *e.EstimateValue
		totalHours += float64(e.ActiveMinutes+e.RevisionMinutes) / 60
	}
	var dollarPerHour float64
	if totalHours > 0 {
		dollarPerHour = totalValue / totalHours
	}

	breakdown := emptySeverityCounts()
	timeSums := emptySeverityMeans()
	valueSums := emptySeverityMeans()
	for _, e := range valid {
		s := *e.Severity
		breakdown[s]++
		timeSums[s] += float64(e.ActiveMinutes) / 60
		valueSums[s] += *e.EstimateValue
	}
	avgTime := emptySeverityMeans()
	avgValue := emptySeverityMeans()
	for s := 1; s <= 5; s++ {
		if breakdown[s] > 0 {
			avgTime[s] = timeSums[s] / float64(breakdown[s])
			avgValue[s] = valueSums[s] / float64(breakdown[s])
		}
	}

	return WeeklyMetrics{
		AvgDaysHeld:           totalDaysHeld / n,
		RevisionRate:          float64(totalRevisions) / n,
		FirstTimeApprovalRate: float64(firstTimeApprovals) / n * 100,
		DollarPerHour:         dollarPerHour,
		TotalEstimates:        len(valid),
		SeverityBreakdown:     breakdown,
		AvgTimePerSeverity:    avgTime,
		AvgValuePerSeverity:   avgValue,
	}
}

// ComputeTeam flattens all estimators' entries into one collection and
// delegates to Compute. Team ratios are therefore computed over the union of
// raw entries, not averaged across individuals: team dollar-per-hour is total
// team dollars over total team hours.
func ComputeTeam(perEstimator map[string][]domain.ClaimEstimate, now time.Time) WeeklyMetrics {
	var all []domain.ClaimEstimate
	for _, entries := range perEstimator {
		all = append(all, entries...)
	}
	return Compute(all, now)
}
