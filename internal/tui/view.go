package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/x/ansi"

	"github.com/cursorbar/cursorbar/internal/monitor"
	"github.com/cursorbar/cursorbar/internal/status"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.showDetails {
		b.WriteString(m.detailView())
	}

	b.WriteString(helpStyle.Render("r refresh · d details · p %/count · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	if m.refreshing || !m.hasData {
		return m.spinner.View() + " " + neutralStyle.Render("fetching usage…")
	}

	var line string
	switch m.snapshot.State {
	case monitor.StateSignedOut:
		line = neutralStyle.Render("◌ not signed in to Cursor")
	case monitor.StateError:
		line = criticalStyle.Render("✗ usage unavailable")
	default:
		sl := status.StatusLine(m.snapshot.Report.Records, m.cfg.ShowPercentage)
		line = tierStyle(sl.Tier).Render("● " + sl.Text)
	}

	if age := m.snapshotAge(); age != "" {
		line += " " + helpStyle.Render(age)
	}
	return m.fit(line)
}

func (m Model) snapshotAge() string {
	if m.snapshot.FetchedAt.IsZero() {
		return ""
	}
	elapsed := time.Since(m.snapshot.FetchedAt)
	switch {
	case elapsed < time.Minute:
		return "· just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("· %dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("· %dh ago", int(elapsed.Hours()))
	}
}

func (m Model) detailView() string {
	var b strings.Builder

	switch m.snapshot.State {
	case monitor.StateSignedOut:
		b.WriteString(neutralStyle.Render("Sign in to Cursor to see subscription usage."))
		b.WriteString("\n")
		return b.String()
	case monitor.StateError:
		if m.snapshot.Err != nil {
			b.WriteString(criticalStyle.Render(m.fit("last error: " + m.snapshot.Err.Error())))
			b.WriteString("\n")
		}
		return b.String()
	}

	if m.snapshot.Profile.Email != "" {
		account := m.snapshot.Profile.Email
		if m.snapshot.Profile.Membership != "" {
			account += " (" + m.snapshot.Profile.Membership + ")"
		}
		b.WriteString(labelStyle.Render("Account") + "  " + neutralStyle.Render(account))
		b.WriteString("\n")
	}

	rows := status.DetailRows(m.snapshot.Report)
	if len(rows) == 0 {
		b.WriteString(neutralStyle.Render("No usage recorded this billing cycle."))
		b.WriteString("\n")
		return b.String()
	}

	for _, row := range rows {
		line := labelStyle.Render(row.Label) + "  " + tierStyle(row.Tier).Render(row.Tier.Icon()+" "+row.Text)
		b.WriteString(m.fit(line))
		b.WriteString("\n")
	}

	if chart := m.usageChart(); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n")
	}
	return b.String()
}

// usageChart draws percent-used bars for every limited model.
func (m Model) usageChart() string {
	var data []barchart.BarData
	for _, rec := range m.snapshot.Report.Records {
		if !rec.HasLimit {
			continue
		}
		data = append(data, barchart.BarData{
			Label: rec.ModelKey,
			Values: []barchart.BarValue{{
				Name:  "used",
				Value: float64(rec.PercentUsed),
				Style: tierStyle(status.TierFor(100 - rec.PercentUsed)),
			}},
		})
	}
	if len(data) == 0 {
		return ""
	}

	width := m.width
	if width <= 0 || width > 48 {
		width = 48
	}
	bc := barchart.New(width, 6, barchart.WithMaxValue(100))
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}

// fit truncates a styled line to the terminal width.
func (m Model) fit(line string) string {
	if m.width > 0 && ansi.StringWidth(line) > m.width {
		return ansi.Truncate(line, m.width, "…")
	}
	return line
}
