package tui

import (
	"github.com/cursorbar/cursorbar/internal/monitor"
	"github.com/cursorbar/cursorbar/internal/status"
)

// PlainStatus renders one unstyled status line for embedding in external
// status bars (tmux, waybar).
func PlainStatus(snap monitor.Snapshot, showPercentage bool) string {
	switch snap.State {
	case monitor.StateSignedOut:
		return "not signed in"
	case monitor.StateError:
		return "error"
	}
	line := status.StatusLine(snap.Report.Records, showPercentage)
	return line.Tier.Icon() + " " + line.Text
}
