// Package filter provides optional row filtering for the guide table.
//
// Filters narrow the cleaned guide rows before ranking:
//   - Makes (substring matching, case-insensitive)
//   - Categories (substring matching, case-insensitive)
//   - Year range (compared against the first number in the Year cell)
//
// An empty filter matches every row, so the default pipeline is unfiltered.
package filter

import (
	"strings"

	"github.com/pfrederiksen/k500-guide/internal/clean"
	"github.com/pfrederiksen/k500-guide/internal/guide"
)

// Filter represents guide row filtering criteria
type Filter struct {
	// Make filtering (case-insensitive substring match)
	Makes []string `json:"makes,omitempty"`

	// Category filtering (case-insensitive substring match)
	Categories []string `json:"categories,omitempty"`

	// Year range filtering, inclusive; zero means unbounded. The Year cell
	// is free text ("1968-75"), so the leading number is what gets compared.
	YearFrom int `json:"year_from,omitempty"`
	YearTo   int `json:"year_to,omitempty"`
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all rows.
func (f *Filter) IsEmpty() bool {
	return len(f.Makes) == 0 &&
		len(f.Categories) == 0 &&
		f.YearFrom == 0 &&
		f.YearTo == 0
}

// Matches checks if a row passes all active filter criteria.
// An empty filter matches all rows. A row whose Year cell has no number
// fails any active year bound.
func (f *Filter) Matches(r guide.Row) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Makes) > 0 && !matchesAny(r.Make, f.Makes) {
		return false
	}

	if len(f.Categories) > 0 && !matchesAny(r.Category, f.Categories) {
		return false
	}

	if f.YearFrom > 0 || f.YearTo > 0 {
		year := clean.ExtractNumber(r.Year)
		if !year.Valid {
			return false
		}
		if f.YearFrom > 0 && int(year.Value) < f.YearFrom {
			return false
		}
		if f.YearTo > 0 && int(year.Value) > f.YearTo {
			return false
		}
	}

	return true
}

// Apply returns the rows matching the filter, preserving order
func (f *Filter) Apply(rows []guide.Row) []guide.Row {
	if f.IsEmpty() {
		return rows
	}
	matched := make([]guide.Row, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// matchesAny reports whether value contains any of the terms,
// case-insensitively
func matchesAny(value string, terms []string) bool {
	value = strings.ToLower(value)
	for _, term := range terms {
		if strings.Contains(value, strings.ToLower(strings.TrimSpace(term))) {
			return true
		}
	}
	return false
}
