package kpi

import (
	"testing"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallScore_PerfectWeek(t *testing.T) {
	m := WeeklyMetrics{
		DollarPerHour:         15000,
		RevisionRate:          0,
		FirstTimeApprovalRate: 100,
		AvgDaysHeld:           0,
	}
	assert.Equal(t, 100, OverallScore(m), "40+30+20+10 with every sub-score maxed")
}

func TestOverallScore_ZeroMetrics(t *testing.T) {
	// An all-zero week still earns the revision and efficiency components:
	// zero revisions and zero days held are as good as those axes get.
	m := zeroMetrics()
	assert.Equal(t, 40, OverallScore(m))
}

func TestOverallScore_SubScoresClamped(t *testing.T) {
	m := WeeklyMetrics{
		DollarPerHour:         60000, // way past the anchor, still capped at 40
		RevisionRate:          5,     // past the anchor, floored at 0
		FirstTimeApprovalRate: 50,
		AvgDaysHeld:           10, // floored at 0
	}
	assert.Equal(t, 50, OverallScore(m), "40 + 0 + 10 + 0")
}

func TestOverallScore_Rounding(t *testing.T) {
	m := WeeklyMetrics{
		DollarPerHour:         7500, // 20 points
		RevisionRate:          1,    // 15 points
		FirstTimeApprovalRate: 33.333333,
		AvgDaysHeld:           1.5, // 5 points
	}
	// 20 + 15 + 6.667 + 5 = 46.667 -> 47
	assert.Equal(t, 47, OverallScore(m))
}

func TestRank_DescendingWithDeterministicTies(t *testing.T) {
	per := map[string][]domain.ClaimEstimate{
		"carol": {entry(3, 60, 15000, 0)}, // maxed dollar/hour
		"bob":   {entry(3, 60, 3000, 2)},
		"alice": {entry(3, 60, 3000, 2)}, // identical to bob -> tie
	}
	ranked := Rank(per, testNow)

	require.Len(t, ranked, 3, "one entry per estimator")
	assert.Equal(t, "carol", ranked[0].EstimatorID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score, "non-increasing scores")
	}
	assert.Equal(t, "alice", ranked[1].EstimatorID, "ties break by estimator id")
	assert.Equal(t, "bob", ranked[2].EstimatorID)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(map[string][]domain.ClaimEstimate{}, testNow))
}

func TestRecommendations_Thresholds(t *testing.T) {
	recs := Recommendations("Dana", WeeklyMetrics{
		RevisionRate:          2.0,
		DollarPerHour:         4000,
		FirstTimeApprovalRate: 20,
	})
	require.Len(t, recs, 2)
	assert.Equal(t, RecommendationWarning, recs[0].Type)
	assert.Contains(t, recs[0].Message, "revision rate")
	assert.Contains(t, recs[1].Message, "below target")
}

func TestRecommendations_StrongWeek(t *testing.T) {
	recs := Recommendations("Dana", WeeklyMetrics{
		RevisionRate:          0.2,
		DollarPerHour:         16000,
		FirstTimeApprovalRate: 92,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationSuccess, recs[0].Type)
	assert.Contains(t, recs[0].Message, "Dana")
}

func TestRecommendations_NothingStandsOut(t *testing.T) {
	recs := Recommendations("Dana", WeeklyMetrics{
		RevisionRate:          1.0,
		DollarPerHour:         12000,
		FirstTimeApprovalRate: 60,
	})
	assert.Empty(t, recs)
}
