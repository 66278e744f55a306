package kpi

import "fmt"

// RecommendationType distinguishes coaching warnings from positive signals.
type RecommendationType string

const (
	RecommendationWarning RecommendationType = "warning"
	RecommendationSuccess RecommendationType = "success"
)

// Recommendation is one rule-generated coaching note for an estimator.
type Recommendation struct {
	Type    RecommendationType
	Message string
}

// Rule thresholds for the recommendation generator.
const (
	highRevisionRate   = 1.5
	lowDollarPerHour   = 10000.0
	strongApprovalRate = 80.0
)

// Recommendations applies the fixed coaching rules to an estimator's weekly
// metrics. An empty slice means nothing stood out.
func Recommendations(estimatorName string, m WeeklyMetrics) []Recommendation {
	var recs []Recommendation

	if m.RevisionRate > highRevisionRate {
		recs = append(recs, Recommendation{
			Type: RecommendationWarning,
			Message: fmt.Sprintf("%s has a high revision rate (%.1f). Consider additional training or limiting to lower severity claims.",
				estimatorName, m.RevisionRate),
		})
	}

	if m.DollarPerHour < lowDollarPerHour {
		recs = append(recs, Recommendation{
			Type: RecommendationWarning,
			Message: fmt.Sprintf("%s's productivity is below target ($%.0f/hour). Review work assignment strategy.",
				estimatorName, m.DollarPerHour),
		})
	}

	if m.FirstTimeApprovalRate > strongApprovalRate {
		recs = append(recs, Recommendation{
			Type: RecommendationSuccess,
			Message: fmt.Sprintf("%s has excellent first-time approval rate (%.0f%%). Consider assigning more complex claims.",
				estimatorName, m.FirstTimeApprovalRate),
		})
	}

	return recs
}
