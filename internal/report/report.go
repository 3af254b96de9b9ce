// Package report aggregates logged entries into per-person totals and
// ordered detail listings. The engine takes an already-scoped entry set:
// role checks happen at the call site, not here.
package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/voltrack/voltrack/internal/hours"
)

// ErrInvalidRange is returned when a date range fails validation.
var ErrInvalidRange = errors.New("invalid date range")

// Row is one entry with its owner's name resolved for display.
type Row struct {
	FullName string
	Date     string
	Event    string
	Start    string
	End      string
	Hours    float64
	Notes    string
}

// Total is one person's summed hours.
type Total struct {
	FullName string
	Hours    float64
}

// GroupKey extracts the aggregation bucket for a row. Grouping is by
// resolved display name, so two users sharing a full name collapse into
// one bucket. That matches the system's historical reports; switching to
// owner id is a one-line change here.
func GroupKey(r Row) string {
	return r.FullName
}

// TotalsByPerson sums hours per group key. A plain running total: no
// weighting, no dedup, order-independent.
func TotalsByPerson(rows []Row) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		totals[GroupKey(r)] += r.Hours
	}
	return totals
}

// SortedTotals flattens a totals map into rows ordered by name, the shape
// the summary page and totals export consume.
func SortedTotals(totals map[string]float64) []Total {
	out := make([]Total, 0, len(totals))
	for name, h := range totals {
		out = append(out, Total{FullName: name, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// ValidateRange checks that both bounds are well-formed ISO days and that
// start is not after end. It runs before any query; comparison is
// lexicographic, which is chronological for zero-padded YYYY-MM-DD.
func ValidateRange(start, end string) error {
	if !hours.ValidDate(start) {
		return fmt.Errorf("%w: bad start date %q", ErrInvalidRange, start)
	}
	if !hours.ValidDate(end) {
		return fmt.Errorf("%w: bad end date %q", ErrInvalidRange, end)
	}
	if start > end {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, start, end)
	}
	return nil
}

// InRange reports whether date falls inside [start, end], inclusive on
// both bounds.
func InRange(date, start, end string) bool {
	return date >= start && date <= end
}
