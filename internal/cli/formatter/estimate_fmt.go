package formatter

import (
	"fmt"
	"strings"

	"github.com/fdalton/claimtrack/internal/domain"
)

// EstimateTable renders a list of estimates as a table.
func EstimateTable(estimates []*domain.ClaimEstimate) string {
	headers := []string{"FILE #", "CLIENT", "CARRIER", "SEV", "VALUE", "STATUS", "ACTIVE", "RECEIVED"}
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		sev := "-"
		if e.Severity != nil {
			sev = fmt.Sprintf("%d", *e.Severity)
		}
		value := "-"
		if e.EstimateValue != nil {
			value = Money(*e.EstimateValue)
		}
		rows = append(rows, []string{
			e.FileNumber,
			Truncate(e.ClientName, 24),
			Truncate(e.Carrier, 24),
			sev,
			value,
			StatusBadge(e.Status),
			Hours(e.ActiveMinutes),
			e.DateReceived.Format("2006-01-02"),
		})
	}
	return RenderTable(headers, rows)
}

// EstimateDetail renders a single estimate as a boxed detail view.
func EstimateDetail(e *domain.ClaimEstimate) string {
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Status", StatusBadge(e.Status))
	line("Client", e.ClientName)
	line("Carrier", e.Carrier)
	if e.ClaimNumber != "" {
		line("Claim #", e.ClaimNumber)
	}
	if e.PolicyNumber != "" {
		line("Policy #", e.PolicyNumber)
	}
	if e.Peril != "" {
		line("Peril", e.Peril)
	}
	if e.Severity != nil {
		line("Severity", fmt.Sprintf("%d", *e.Severity))
	}
	if e.EstimateValue != nil {
		line("Value", Money(*e.EstimateValue))
	}
	if e.RCV != nil {
		line("RCV", Money(*e.RCV))
	}
	if e.Deductible != nil {
		line("Deductible", Money(*e.Deductible))
	}

	b.WriteString("\n")
	line("Active", Hours(e.ActiveMinutes))
	line("Blocked", Hours(e.BlockedMinutes))
	line("Revision", Hours(e.RevisionMinutes))
	line("Revisions", fmt.Sprintf("%d", e.Revisions))

	if e.IsBlocked() && e.CurrentBlockerType != nil {
		b.WriteString("\n")
		line("Blocker", StyleRed.Render(e.CurrentBlockerType.Label()))
		if e.CurrentBlockerName != "" {
			line("Waiting on", e.CurrentBlockerName)
		}
		if e.CurrentBlockerReason != "" {
			line("Reason", e.CurrentBlockerReason)
		}
		if e.CurrentBlockedAt != nil {
			line("Since", e.CurrentBlockedAt.Format("2006-01-02 15:04"))
		}
	}

	b.WriteString("\n")
	line("Received", e.DateReceived.Format("2006-01-02"))
	line("Started", Date(e.DateStarted))
	line("Completed", Date(e.DateCompleted))
	line("Sent", Date(e.DateSentToCarrier))
	line("Closed", Date(e.DateClosed))

	if e.IsSettled && e.ActualSettlement != nil {
		b.WriteString("\n")
		line("Settled", Money(*e.ActualSettlement))
		if e.SettlementVariance != nil {
			v := *e.SettlementVariance
			styled := StyleGreen.Render(Money(v))
			if v < 0 {
				styled = StyleRed.Render(Money(v))
			}
			line("Variance", styled)
		}
	}

	if e.Notes != "" {
		b.WriteString("\n")
		line("Notes", e.Notes)
	}

	return RenderBox(e.FileNumber, strings.TrimRight(b.String(), "\n"))
}

// EventLog renders an estimate's audit trail, oldest first.
func EventLog(events []*domain.EstimateEvent) string {
	if len(events) == 0 {
		return StyleDim.Render("no events recorded")
	}

	var b strings.Builder
	for _, ev := range events {
		b.WriteString(StyleDim.Render(ev.CreatedAt.Format("2006-01-02 15:04")))
		b.WriteString("  ")
		switch ev.Type {
		case domain.EventBlockerSet:
			b.WriteString(StyleRed.Render(ev.Description))
		case domain.EventBlockerCleared:
			b.WriteString(StyleGreen.Render(ev.Description))
		case domain.EventStatusChange:
			b.WriteString(ev.Description)
		default:
			b.WriteString(StyleDim.Render(string(ev.Type)))
			b.WriteString(" ")
			b.WriteString(ev.Description)
		}
		if ev.BlockerDurationMinutes != nil {
			b.WriteString(StyleDim.Render(fmt.Sprintf(" (%s blocked)", Hours(*ev.BlockerDurationMinutes))))
		}
		b.WriteString("\n")
	}
	return b.String()
}
