package guide

import (
	"fmt"
	"strconv"
)

// ExpectedColumns is the column layout the guide table is assumed to have.
// Normalization renames scraped headers positionally to these names, so
// correctness depends on the source table keeping this column order.
var ExpectedColumns = []string{"Year", "Make", "Model", "Body", "Category", "0-60", "Top Speed", "Rating"}

// IndexReading is a named market index value extracted from the home page
type IndexReading struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Number is an optional numeric cell value. Absent values (Valid == false)
// represent cells that could not yield a number; they never carry an error.
type Number struct {
	Value float64
	Valid bool
}

// Some returns a present Number holding v
func Some(v float64) Number {
	return Number{Value: v, Valid: true}
}

// None returns an absent Number
func None() Number {
	return Number{}
}

// String formats the number for display, or "-" when absent
func (n Number) String() string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON encodes the number as its value, or null when absent
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON decodes null as absent and any number as present
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = None()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Some(v)
	return nil
}

// Row represents one car entry from the guide table. The eight named fields
// hold the cell text as scraped; the Number fields are derived by cleaning.
type Row struct {
	Year        string `json:"year"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	ZeroToSixty string `json:"zero_to_sixty"`
	TopSpeed    string `json:"top_speed"`
	Rating      string `json:"rating"`

	ZeroToSixtySec Number `json:"zero_to_sixty_sec"`
	TopSpeedMPH    Number `json:"top_speed_mph"`
	RatingValue    Number `json:"rating_value"`
}

// Table is an ordered cell matrix scraped from the guide page. Columns holds
// the header names as scraped until NormalizeColumns renames them positionally.
type Table struct {
	Columns []string
	Cells   [][]string
	Named   bool // columns match ExpectedColumns
}

// NormalizeColumns renames the table's columns positionally to
// ExpectedColumns when the scraped column count matches. On a count mismatch
// the scraped names are kept, Named stays false, and the mismatch is reported
// so the caller can warn and skip schema-dependent steps.
func (t *Table) NormalizeColumns() error {
	if len(t.Columns) != len(ExpectedColumns) {
		return fmt.Errorf("column count mismatch: scraped %d, expected %d", len(t.Columns), len(ExpectedColumns))
	}
	t.Columns = append([]string(nil), ExpectedColumns...)
	t.Named = true
	return nil
}

// ColumnIndex returns the position of the named column in the header
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// NamedRows materializes the cell matrix as typed rows in scrape order,
// looking each field up by column name. Expected columns missing from the
// header yield empty fields, so a table that kept its scraped names after a
// failed normalization still produces rows for whatever columns it does have.
func (t *Table) NamedRows() []Row {
	cell := func(cells []string, name string) string {
		i, ok := t.ColumnIndex(name)
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}

	rows := make([]Row, 0, len(t.Cells))
	for _, cells := range t.Cells {
		rows = append(rows, Row{
			Year:        cell(cells, "Year"),
			Make:        cell(cells, "Make"),
			Model:       cell(cells, "Model"),
			Body:        cell(cells, "Body"),
			Category:    cell(cells, "Category"),
			ZeroToSixty: cell(cells, "0-60"),
			TopSpeed:    cell(cells, "Top Speed"),
			Rating:      cell(cells, "Rating"),
		})
	}
	return rows
}
