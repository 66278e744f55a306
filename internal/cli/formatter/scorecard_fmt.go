package formatter

import (
	"fmt"
	"strings"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/kpi"
)

// ScoreStyle colors an overall score: green at 80+, yellow at 50+, red below.
func ScoreStyle(score int) string {
	s := fmt.Sprintf("%d", score)
	switch {
	case score >= 80:
		return StyleGreen.Render(s)
	case score >= 50:
		return StyleYellow.Render(s)
	default:
		return StyleRed.Render(s)
	}
}

// Scorecard renders one estimator's weekly scorecard.
func Scorecard(v *app.ScorecardView) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(v.DisplayName))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  week of %s", v.WeekStart.Format("Jan 2"))))
	b.WriteString("\n\n")

	m := v.Metrics
	b.WriteString(fmt.Sprintf("Overall score      %s\n", ScoreStyle(v.Score)))
	b.WriteString(fmt.Sprintf("Estimates          %d\n", m.TotalEstimates))
	b.WriteString(fmt.Sprintf("$/hour             %s\n", Money(m.DollarPerHour)))
	b.WriteString(fmt.Sprintf("Revision rate      %.2f\n", m.RevisionRate))
	b.WriteString(fmt.Sprintf("First-time appr.   %.0f%%\n", m.FirstTimeApprovalRate))
	b.WriteString(fmt.Sprintf("Avg days held      %.1f\n", m.AvgDaysHeld))
	b.WriteString(fmt.Sprintf("Open files         %d", v.OpenCount))
	if v.BlockedCount > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  (%d blocked)", v.BlockedCount)))
	}
	b.WriteString("\n")

	if breakdown := severityBreakdown(m); breakdown != "" {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("BY SEVERITY"))
		b.WriteString("\n")
		b.WriteString(breakdown)
	}

	if len(v.Targets) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("TARGETS"))
		b.WriteString("\n")
		for _, tc := range v.Targets {
			mark := StyleGreen.Render("✓")
			if !tc.Met {
				mark = StyleRed.Render("✗")
			}
			b.WriteString(fmt.Sprintf("%s %-16s %.1f (target %.1f)\n", mark, tc.Label, tc.Actual, tc.Target))
		}
	}

	if len(v.Recommendations) > 0 {
		b.WriteString("\n")
		for _, r := range v.Recommendations {
			b.WriteString(recommendationLine(r))
			b.WriteString("\n")
		}
	}

	return RenderBox("scorecard", strings.TrimRight(b.String(), "\n"))
}

func severityBreakdown(m kpi.WeeklyMetrics) string {
	var b strings.Builder
	for s := 1; s <= 5; s++ {
		count := m.SeverityBreakdown[s]
		if count == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("sev %d  %2d files  %5.1fh avg  %s avg",
			s, count, m.AvgTimePerSeverity[s], Money(m.AvgValuePerSeverity[s])))
		if target, ok := kpi.SeverityTargets[s]; ok {
			b.WriteString(StyleDim.Render(fmt.Sprintf("  (target %s)", target.TimeLabel)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func recommendationLine(r kpi.Recommendation) string {
	switch r.Type {
	case kpi.RecommendationSuccess:
		return StyleGreen.Render("● " + r.Message)
	case kpi.RecommendationWarning:
		return StyleYellow.Render("● " + r.Message)
	default:
		return StyleDim.Render("● " + r.Message)
	}
}
