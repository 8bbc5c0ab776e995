// Package rank orders cleaned guide rows by rating and picks a recommendation.
package rank

import (
	"errors"
	"sort"

	"github.com/pfrederiksen/k500-guide/internal/guide"
)

// ErrNoRatedRows is returned when cleaning left no row with a usable rating
var ErrNoRatedRows = errors.New("no ratable entries found")

// Result holds the ranked top list and the single recommended row
type Result struct {
	Top            []guide.Row
	Recommendation guide.Row
}

// Rank sorts rows by rating descending and returns the first topN of them
// plus the best-rated row as the recommendation. The sort is stable, so rows
// with equal ratings keep their scrape order. The input slice is not mutated.
// Rows without a valid rating must already have been dropped by cleaning;
// any that remain sort last.
func Rank(rows []guide.Row, topN int) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoRatedRows
	}

	sorted := append([]guide.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].RatingValue, sorted[j].RatingValue
		if ri.Valid != rj.Valid {
			return ri.Valid
		}
		return ri.Value > rj.Value
	})

	if topN > len(sorted) {
		topN = len(sorted)
	}
	if topN < 1 {
		topN = 1
	}

	return &Result{
		Top:            sorted[:topN],
		Recommendation: sorted[0],
	}, nil
}
