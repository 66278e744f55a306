package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/kpi"
)

func TestMoney_Formatting(t *testing.T) {
	assert.Equal(t, "$0", Money(0))
	assert.Equal(t, "$950", Money(950))
	assert.Equal(t, "$42,500", Money(42500))
	assert.Equal(t, "$1,250,000", Money(1250000))
	assert.Equal(t, "-$2,500", Money(-2500))
}

func TestMoney_RoundsToWholeDollars(t *testing.T) {
	assert.Equal(t, "$1,000", Money(999.6))
	assert.Equal(t, "$999", Money(999.4))
}

func TestHours_FractionalHours(t *testing.T) {
	assert.Equal(t, "2.5h", Hours(150))
	assert.Equal(t, "0.0h", Hours(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "very long…", Truncate("very long client name", 10))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"FILE #", "CLIENT"},
		[][]string{
			{"CLM-0001", "Alice"},
			{"CLM-0002", "Bob Bobberton"},
		},
	)
	assert.Contains(t, out, "FILE #")
	assert.Contains(t, out, "CLM-0001")
	assert.Contains(t, out, "Bob Bobberton")
	assert.Contains(t, out, "─")
}

func TestStatusBadge_KnownStatuses(t *testing.T) {
	assert.Contains(t, StatusBadge(domain.StatusInProgress), "In Progress")
	assert.Contains(t, StatusBadge(domain.StatusBlocked), "Blocked")
	assert.Contains(t, StatusBadge(domain.StatusClosed), "Closed")
}

func TestEstimateTable_RendersRows(t *testing.T) {
	sev := 3
	value := 42500.0
	estimates := []*domain.ClaimEstimate{
		{
			FileNumber:    "FL-2024001234",
			ClientName:    "Avelina Cerezo",
			Carrier:       "Harbor Mutual Insurance",
			Severity:      &sev,
			EstimateValue: &value,
			Status:        domain.StatusInProgress,
			ActiveMinutes: 90,
			DateReceived:  time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	out := EstimateTable(estimates)
	assert.Contains(t, out, "FL-2024001234")
	assert.Contains(t, out, "Avelina Cerezo")
	assert.Contains(t, out, "$42,500")
	assert.Contains(t, out, "1.5h")
	assert.Contains(t, out, "2026-04-15")
}

func TestEstimateDetail_ShowsBlockerSection(t *testing.T) {
	bt := domain.BlockerCarrier
	blockedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	e := &domain.ClaimEstimate{
		FileNumber:           "CLM-0042",
		ClientName:           "Test Client",
		Carrier:              "Test Mutual",
		Status:               domain.StatusBlocked,
		DateReceived:         time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC),
		CurrentBlockerType:   &bt,
		CurrentBlockerName:   "Jordan at Test Mutual",
		CurrentBlockerReason: "waiting on policy declarations",
		CurrentBlockedAt:     &blockedAt,
	}

	out := EstimateDetail(e)
	assert.Contains(t, out, "CLM-0042")
	assert.Contains(t, out, "Waiting on Carrier")
	assert.Contains(t, out, "Jordan at Test Mutual")
	assert.Contains(t, out, "waiting on policy declarations")
}

func TestEstimateDetail_SettlementVariance(t *testing.T) {
	value := 50000.0
	settlement := 47500.0
	variance := -2500.0
	e := &domain.ClaimEstimate{
		FileNumber:         "CLM-0043",
		ClientName:         "Test Client",
		Carrier:            "Test Mutual",
		Status:             domain.StatusSettled,
		DateReceived:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EstimateValue:      &value,
		IsSettled:          true,
		ActualSettlement:   &settlement,
		SettlementVariance: &variance,
	}

	out := EstimateDetail(e)
	assert.Contains(t, out, "$47,500")
	assert.Contains(t, out, "-$2,500")
}

func TestEventLog_RendersDurations(t *testing.T) {
	duration := 120
	events := []*domain.EstimateEvent{
		{
			Type:        domain.EventStatusChange,
			Description: "moved from Assigned to In Progress",
			CreatedAt:   time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Type:                   domain.EventBlockerCleared,
			Description:            "blocker cleared",
			BlockerDurationMinutes: &duration,
			CreatedAt:              time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC),
		},
	}

	out := EventLog(events)
	assert.Contains(t, out, "moved from Assigned to In Progress")
	assert.Contains(t, out, "2.0h blocked")
}

func TestEventLog_Empty(t *testing.T) {
	assert.Contains(t, EventLog(nil), "no events")
}

func TestScorecard_RendersMetricsAndTargets(t *testing.T) {
	v := &app.ScorecardView{
		DisplayName: "Dana Field",
		WeekStart:   time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		Metrics: kpi.WeeklyMetrics{
			TotalEstimates:        4,
			DollarPerHour:         12500,
			RevisionRate:          0.5,
			FirstTimeApprovalRate: 75,
			AvgDaysHeld:           1.5,
			SeverityBreakdown:     map[int]int{2: 3, 3: 1},
			AvgTimePerSeverity:    map[int]float64{2: 0.8, 3: 2.5},
			AvgValuePerSeverity:   map[int]float64{2: 9000, 3: 30000},
		},
		Score: 82,
		Recommendations: []kpi.Recommendation{
			{Type: kpi.RecommendationWarning, Message: "Dana Field's productivity is below target"},
		},
		Targets: []app.TargetComparison{
			{Label: "$/hour", Actual: 12500, Target: 12000, Met: true},
		},
		OpenCount:    3,
		BlockedCount: 1,
	}

	out := Scorecard(v)
	assert.Contains(t, out, "Dana Field")
	assert.Contains(t, out, "$12,500")
	assert.Contains(t, out, "sev 2")
	assert.Contains(t, out, "target < 1 hour")
	assert.Contains(t, out, "below target")
	assert.Contains(t, out, "1 blocked")
}

func TestTeamReport_RanksMembers(t *testing.T) {
	v := &app.TeamReportView{
		WeekStart: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		Team: kpi.WeeklyMetrics{
			TotalEstimates: 6,
			DollarPerHour:  9000,
		},
		Members: []app.TeamMemberView{
			{DisplayName: "Dana Field", Score: 90, Metrics: kpi.WeeklyMetrics{TotalEstimates: 4}},
			{DisplayName: "Sam Reyes", Score: 60, Metrics: kpi.WeeklyMetrics{TotalEstimates: 2}},
		},
		ActiveBlockers: 2,
	}

	out := TeamReport(v)
	danaIdx := strings.Index(out, "Dana Field")
	samIdx := strings.Index(out, "Sam Reyes")
	assert.Greater(t, danaIdx, -1)
	assert.Greater(t, samIdx, danaIdx, "higher score renders first")
	assert.Contains(t, out, "TEAM TOTALS")
	assert.Contains(t, out, "2 active blocker")
}
