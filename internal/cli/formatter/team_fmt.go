package formatter

import (
	"fmt"
	"strings"

	"github.com/fdalton/claimtrack/internal/app"
)

// TeamReport renders the team-wide weekly report: a ranked member table
// followed by union metrics for the whole team.
func TeamReport(v *app.TeamReportView) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render("Team report"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  week of %s", v.WeekStart.Format("Jan 2"))))
	b.WriteString("\n\n")

	headers := []string{"#", "ESTIMATOR", "SCORE", "FILES", "$/HR", "REV RATE", "FTA"}
	rows := make([][]string, 0, len(v.Members))
	for i, m := range v.Members {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			m.DisplayName,
			ScoreStyle(m.Score),
			fmt.Sprintf("%d", m.Metrics.TotalEstimates),
			Money(m.Metrics.DollarPerHour),
			fmt.Sprintf("%.2f", m.Metrics.RevisionRate),
			fmt.Sprintf("%.0f%%", m.Metrics.FirstTimeApprovalRate),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	b.WriteString(StyleHeader.Render("TEAM TOTALS"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Estimates          %d\n", v.Team.TotalEstimates))
	b.WriteString(fmt.Sprintf("$/hour             %s\n", Money(v.Team.DollarPerHour)))
	b.WriteString(fmt.Sprintf("Revision rate      %.2f\n", v.Team.RevisionRate))
	b.WriteString(fmt.Sprintf("First-time appr.   %.0f%%\n", v.Team.FirstTimeApprovalRate))

	if v.ActiveBlockers > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d active blocker(s) across the team", v.ActiveBlockers)))
		b.WriteString("\n")
	}

	return b.String()
}
