// Package tui renders the status bar as a small inline bubbletea program:
// one tier-colored line, an expandable per-model detail view, and
// keybindings for manual refresh and display toggles.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cursorbar/cursorbar/internal/config"
	"github.com/cursorbar/cursorbar/internal/monitor"
)

// SnapshotMsg delivers a freshly published snapshot from the monitor.
type SnapshotMsg monitor.Snapshot

type Model struct {
	cfg         config.Config
	snapshot    monitor.Snapshot
	hasData     bool
	refreshing  bool
	showDetails bool
	width       int
	spinner     spinner.Model

	// Set from main.go to wire into the monitor and config persistence.
	onRefresh       func()
	onToggleDisplay func(showPercentage bool)
}

func NewModel(cfg config.Config) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle))
	return Model{cfg: cfg, spinner: sp}
}

// SetOnRefresh sets the callback invoked when the user requests a manual
// refresh.
func (m *Model) SetOnRefresh(fn func()) {
	m.onRefresh = fn
}

// SetOnToggleDisplay sets the callback invoked when the user flips between
// percent and count display.
func (m *Model) SetOnToggleDisplay(fn func(showPercentage bool)) {
	m.onToggleDisplay = fn
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.snapshot = monitor.Snapshot(msg)
		m.hasData = true
		m.refreshing = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.refreshing = true
			if m.onRefresh != nil {
				m.onRefresh()
			}
			return m, nil
		case "d", "enter":
			m.showDetails = !m.showDetails
			return m, nil
		case "p":
			m.cfg.ShowPercentage = !m.cfg.ShowPercentage
			if m.onToggleDisplay != nil {
				m.onToggleDisplay(m.cfg.ShowPercentage)
			}
			return m, nil
		}
	}
	return m, nil
}
