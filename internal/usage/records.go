package usage

import (
	"math"
	"sort"
)

// Record is one model's request consumption within the current billing
// cycle. Records are derived fresh on every fetch and never mutated.
type Record struct {
	ModelKey     string
	DisplayName  string
	RequestsUsed int
	RequestLimit int // meaningful only when HasLimit
	PercentUsed  int // meaningful only when HasLimit
	HasLimit     bool
}

// Report is the result of one usage fetch: the sorted record list plus the
// billing cycle start echoed by the API, verbatim.
type Report struct {
	Records      []Record
	StartOfMonth string
}

// displayNames translates API model keys into plan tier names. Unrecognized
// keys pass through with the raw key as display name.
var displayNames = map[string]string{
	"gpt-4":         "Premium",
	"gpt-4-32k":     "Premium (32k)",
	"gpt-3.5-turbo": "Free",
}

func displayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

// newRecord builds a Record from raw API counts. The percentage is present
// iff the limit is a positive number.
func newRecord(key string, used, limit int) Record {
	r := Record{ModelKey: key, DisplayName: displayName(key), RequestsUsed: used}
	if limit > 0 {
		r.RequestLimit = limit
		r.HasLimit = true
		r.PercentUsed = int(math.Round(100 * float64(used) / float64(limit)))
	}
	return r
}

// sortRecords orders stable-descending by percent used, with records that
// have no limit (and therefore no percentage) after all limited ones.
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasLimit != b.HasLimit {
			return a.HasLimit
		}
		return a.PercentUsed > b.PercentUsed
	})
}
