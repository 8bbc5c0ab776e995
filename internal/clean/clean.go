// Package clean derives numeric fields from the guide table's free-text cells.
//
// Cleaning is deliberately lenient: cells like "5.2 secs", "138mph",
// "112-130mph" or a bare "-" are reduced to their first number or to an
// absent value, never to an error. A row is only dropped when its Rating
// cannot yield a number.
package clean

import (
	"regexp"
	"strconv"

	"github.com/pfrederiksen/k500-guide/internal/guide"
)

// Column names the cleaner keys on. After a failed normalization the table
// keeps its scraped header, so each cleaning step runs only where its column
// name is actually present.
const (
	ZeroToSixtyColumn = "0-60"
	TopSpeedColumn    = "Top Speed"
	RatingColumn      = "Rating"
)

// Derived column names appended to the cleaned dataset
const (
	ZeroToSixtySecColumn = "0_60_sec"
	TopSpeedMPHColumn    = "TopSpeed_mph"
)

// Pattern for the first integer or decimal substring in a cell
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// ExtractNumber returns the first number found in s, or an absent Number when
// s contains no digits. Range cells like "112-130mph" yield the leading value.
func ExtractNumber(s string) guide.Number {
	match := numberPattern.FindString(s)
	if match == "" {
		return guide.None()
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return guide.None()
	}
	return guide.Some(v)
}

// Row derives the numeric fields of a single row from its text cells.
// Applying it to an already-cleaned row yields the same derived values.
func Row(r guide.Row) guide.Row {
	r.ZeroToSixtySec = ExtractNumber(r.ZeroToSixty)
	r.TopSpeedMPH = ExtractNumber(r.TopSpeed)
	r.RatingValue = ExtractNumber(r.Rating)
	return r
}

// Rows cleans every row and drops those without a usable rating. It returns
// the surviving rows in scrape order and the number of rows dropped. Every
// returned row has a valid RatingValue.
func Rows(rows []guide.Row) ([]guide.Row, int) {
	cleaned := make([]guide.Row, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		r = Row(r)
		if !r.RatingValue.Valid {
			dropped++
			continue
		}
		cleaned = append(cleaned, r)
	}
	return cleaned, dropped
}

// TableByName cleans a guide table by column name: where the 0-60 and Top
// Speed columns exist, numeric columns are derived and appended; where the
// Rating column exists, it is coerced to a number in place and rows without
// a usable rating are dropped. Columns that are absent are simply skipped,
// so a table that kept its scraped header after a column-count mismatch is
// cleaned as far as its names allow, and a table with no Rating column comes
// back as a plain copy. The input table is not mutated. Returns the cleaned
// table and the number of rows dropped.
func TableByName(t *guide.Table) (*guide.Table, int) {
	idx060, has060 := t.ColumnIndex(ZeroToSixtyColumn)
	idxTop, hasTop := t.ColumnIndex(TopSpeedColumn)
	idxRating, hasRating := t.ColumnIndex(RatingColumn)

	columns := append([]string(nil), t.Columns...)
	if has060 {
		columns = append(columns, ZeroToSixtySecColumn)
	}
	if hasTop {
		columns = append(columns, TopSpeedMPHColumn)
	}

	cleaned := &guide.Table{
		Columns: columns,
		Named:   t.Named,
	}

	dropped := 0
	for _, cells := range t.Cells {
		if hasRating && !ExtractNumber(cellAt(cells, idxRating)).Valid {
			dropped++
			continue
		}

		row := append([]string(nil), cells...)
		if hasRating && idxRating < len(row) {
			row[idxRating] = ExtractNumber(row[idxRating]).String()
		}
		if has060 {
			row = append(row, cellValue(ExtractNumber(cellAt(cells, idx060))))
		}
		if hasTop {
			row = append(row, cellValue(ExtractNumber(cellAt(cells, idxTop))))
		}
		cleaned.Cells = append(cleaned.Cells, row)
	}

	return cleaned, dropped
}

// cellAt returns the cell at index i, or "" for ragged rows
func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// cellValue renders an extracted number as a cell, empty when absent
func cellValue(n guide.Number) string {
	if !n.Valid {
		return ""
	}
	return n.String()
}
