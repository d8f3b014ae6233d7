package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cursorbar/cursorbar/internal/status"
)

var (
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

func tierStyle(t status.Tier) lipgloss.Style {
	switch t {
	case status.TierOK:
		return okStyle
	case status.TierWarning:
		return warningStyle
	case status.TierCritical:
		return criticalStyle
	default:
		return neutralStyle
	}
}
