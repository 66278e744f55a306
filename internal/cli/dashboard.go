package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/cli/formatter"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/service"
)

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive view of open estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive {
				return fmt.Errorf("dashboard requires a terminal")
			}

			m, err := newDashboardModel(a.Estimates)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

var dashboardBorder = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(formatter.ColorDim)

type dashboardModel struct {
	estimates service.EstimateService
	table     table.Model
	rows      []*domain.ClaimEstimate
	err       error
}

func newDashboardModel(estimates service.EstimateService) (*dashboardModel, error) {
	columns := []table.Column{
		{Title: "FILE #", Width: 16},
		{Title: "CLIENT", Width: 22},
		{Title: "CARRIER", Width: 22},
		{Title: "SEV", Width: 3},
		{Title: "VALUE", Width: 10},
		{Title: "STATUS", Width: 18},
		{Title: "ACTIVE", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#3c3836")).
		Bold(true)
	t.SetStyles(s)

	m := &dashboardModel{estimates: estimates, table: t}
	if err := m.refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *dashboardModel) refresh() error {
	open, err := m.estimates.ListOpen(context.Background())
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(open))
	for _, e := range open {
		sev := "-"
		if e.Severity != nil {
			sev = fmt.Sprintf("%d", *e.Severity)
		}
		value := "-"
		if e.EstimateValue != nil {
			value = formatter.Money(*e.EstimateValue)
		}
		rows = append(rows, table.Row{
			e.FileNumber,
			formatter.Truncate(e.ClientName, 22),
			formatter.Truncate(e.Carrier, 22),
			sev,
			value,
			e.Status.Label(),
			formatter.Hours(e.ActiveMinutes),
		})
	}

	m.rows = open
	m.table.SetRows(rows)
	return nil
}

func (m *dashboardModel) Init() tea.Cmd {
	return nil
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.err = m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *dashboardModel) View() string {
	var footer string
	switch {
	case m.err != nil:
		footer = formatter.StyleRed.Render(m.err.Error())
	case len(m.rows) == 0:
		footer = formatter.StyleDim.Render("no open estimates")
	default:
		footer = m.selectedSummary()
	}

	help := formatter.StyleDim.Render("r refresh · q quit")
	return dashboardBorder.Render(m.table.View()) + "\n" + footer + "\n" + help + "\n"
}

// selectedSummary shows the highlighted file's status badge and, when
// blocked, who it is waiting on.
func (m *dashboardModel) selectedSummary() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return ""
	}
	e := m.rows[i]

	summary := fmt.Sprintf("%s  %s", e.FileNumber, formatter.StatusBadge(e.Status))
	if e.IsBlocked() && e.CurrentBlockerType != nil {
		summary += formatter.StyleRed.Render(fmt.Sprintf("  %s", e.CurrentBlockerType.Label()))
		if e.CurrentBlockerName != "" {
			summary += formatter.StyleDim.Render(" (" + e.CurrentBlockerName + ")")
		}
	}
	return summary
}
