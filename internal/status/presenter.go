// Package status turns usage reports into status-bar and detail-view text.
// It is deliberately free of terminal styling so the same output feeds the
// interactive bar, the one-shot status command, and tests.
package status

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cursorbar/cursorbar/internal/usage"
)

// Tier is the severity band of remaining quota.
type Tier int

const (
	TierNone Tier = iota // no data or no limit to judge against
	TierOK
	TierWarning  // ≤30% remaining
	TierCritical // ≤10% remaining
)

// Icon is the plain-text marker for a tier, used outside styled terminals.
func (t Tier) Icon() string {
	switch t {
	case TierOK:
		return "✓"
	case TierWarning:
		return "⚠"
	case TierCritical:
		return "✗"
	default:
		return "·"
	}
}

// primaryPriority lists model keys most-premium first; the first present key
// represents overall status in the compact view.
var primaryPriority = []string{"gpt-4", "gpt-4-32k", "gpt-3.5-turbo"}

// TierFor bands remaining percent into severity tiers.
func TierFor(remainingPercent int) Tier {
	switch {
	case remainingPercent <= 10:
		return TierCritical
	case remainingPercent <= 30:
		return TierWarning
	default:
		return TierOK
	}
}

// Primary selects the record shown in the compact status line: first match
// in the priority order, then the first record with a limit, then the first
// record overall.
func Primary(records []usage.Record) (usage.Record, bool) {
	if len(records) == 0 {
		return usage.Record{}, false
	}
	for _, key := range primaryPriority {
		if rec, ok := lo.Find(records, func(r usage.Record) bool { return r.ModelKey == key }); ok {
			return rec, true
		}
	}
	if rec, ok := lo.Find(records, func(r usage.Record) bool { return r.HasLimit }); ok {
		return rec, true
	}
	return records[0], true
}

// Line is a rendered status fragment plus its severity.
type Line struct {
	Text string
	Tier Tier
}

// StatusLine renders the compact status-bar text for a record list.
// showPercentage selects remaining-percent over remaining-count text.
func StatusLine(records []usage.Record, showPercentage bool) Line {
	rec, ok := Primary(records)
	if !ok {
		return Line{Text: "no usage data", Tier: TierNone}
	}
	if !rec.HasLimit {
		return Line{Text: fmt.Sprintf("%s: %d used", rec.DisplayName, rec.RequestsUsed), Tier: TierNone}
	}

	remaining := rec.RequestLimit - rec.RequestsUsed
	remainingPercent := 100 - rec.PercentUsed
	tier := TierFor(remainingPercent)

	if showPercentage {
		return Line{Text: fmt.Sprintf("%s: %d%% left", rec.DisplayName, remainingPercent), Tier: tier}
	}
	return Line{Text: fmt.Sprintf("%s: %d left", rec.DisplayName, remaining), Tier: tier}
}

// DetailRow is one entry in the expanded view.
type DetailRow struct {
	Label string
	Text  string
	Tier  Tier
}

// DetailRows renders one row per record, with an optional leading billing
// cycle row when the start date is known.
func DetailRows(report usage.Report) []DetailRow {
	var rows []DetailRow
	if report.StartOfMonth != "" {
		rows = append(rows, DetailRow{Label: "Billing cycle", Text: "since " + report.StartOfMonth, Tier: TierNone})
	}
	for _, rec := range report.Records {
		rows = append(rows, detailRow(rec))
	}
	return rows
}

func detailRow(rec usage.Record) DetailRow {
	if !rec.HasLimit {
		return DetailRow{
			Label: rec.DisplayName,
			Text:  fmt.Sprintf("%d requests", rec.RequestsUsed),
			Tier:  TierNone,
		}
	}
	return DetailRow{
		Label: rec.DisplayName,
		Text:  fmt.Sprintf("%d/%d requests (%d%% used)", rec.RequestsUsed, rec.RequestLimit, rec.PercentUsed),
		Tier:  TierFor(100 - rec.PercentUsed),
	}
}
