package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fdalton/claimtrack/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the lipgloss style for a claim status.
func StatusStyle(s domain.EstimateStatus) lipgloss.Style {
	switch s {
	case domain.StatusAssigned:
		return StyleBlue
	case domain.StatusInProgress, domain.StatusRevised:
		return StyleYellow
	case domain.StatusBlocked, domain.StatusUnableToStart:
		return StyleRed
	case domain.StatusReview, domain.StatusSentToCarrier, domain.StatusRevisionRequested:
		return StylePurple
	case domain.StatusSettled, domain.StatusClosed:
		return StyleGreen
	default:
		return StyleDim
	}
}

// StatusBadge returns the status label rendered in its color.
func StatusBadge(s domain.EstimateStatus) string {
	return StatusStyle(s).Render(s.Label())
}
