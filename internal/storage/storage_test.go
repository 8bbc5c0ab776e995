package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/pfrederiksen/k500-guide/internal/guide"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return s
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}

func TestWriteRawCSV(t *testing.T) {
	s := newTestStorage(t)

	table := &guide.Table{
		Columns: []string{"Year", "Make", "Model", "Body", "Category", "0-60", "Top Speed", "Rating"},
		Cells: [][]string{
			{"1961-64", "Jaguar", "E-Type", "Roadster", "Sports", "7.1 secs", "150mph", "4.6"},
			{"1968-75", "MG", "MGB GT V8", "Coupe", "Sports", "-", "112-130mph", "-"},
		},
	}

	if err := s.WriteRawCSV(table); err != nil {
		t.Fatalf("WriteRawCSV failed: %v", err)
	}

	records := readCSV(t, s.RawPath())
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Year" || records[0][7] != "Rating" {
		t.Errorf("unexpected header: %v", records[0])
	}

	// Rows without a usable rating stay in the raw dump, unmodified
	if records[2][7] != "-" {
		t.Errorf("raw dump must keep the unparseable rating cell, got %q", records[2][7])
	}
}

func TestWriteCleanCSV(t *testing.T) {
	s := newTestStorage(t)

	// A cleaned table as produced by the cleaner: derived columns appended,
	// rating numeric, absent numbers already empty cells
	table := &guide.Table{
		Columns: append(append([]string(nil), guide.ExpectedColumns...), "0_60_sec", "TopSpeed_mph"),
		Named:   true,
		Cells: [][]string{
			{"2020", "Ford", "Capri", "Coupe", "Sports", "6.5 secs", "120mph", "4.2", "6.5", "120"},
			{"1955-63", "Mercedes-Benz", "190 SL", "Roadster", "Touring", "14.5 secs", "tbc", "3.2", "14.5", ""},
		},
	}

	if err := s.WriteCleanCSV(table); err != nil {
		t.Fatalf("WriteCleanCSV failed: %v", err)
	}

	records := readCSV(t, s.CleanPath())
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}

	header := records[0]
	if len(header) != 10 {
		t.Fatalf("expected 10 columns, got %d (%v)", len(header), header)
	}
	if header[8] != "0_60_sec" || header[9] != "TopSpeed_mph" {
		t.Errorf("unexpected derived columns: %v", header[8:])
	}

	// Rating column holds the numeric value, derived columns follow
	if records[1][7] != "4.2" || records[1][8] != "6.5" || records[1][9] != "120" {
		t.Errorf("unexpected first row: %v", records[1])
	}

	// Absent numbers stay empty cells
	if records[2][9] != "" {
		t.Errorf("expected empty cell for absent top speed, got %q", records[2][9])
	}
}

func TestWriteCSV_Overwrites(t *testing.T) {
	s := newTestStorage(t)

	table := &guide.Table{
		Columns: []string{"A"},
		Cells:   [][]string{{"1"}, {"2"}},
	}
	if err := s.WriteRawCSV(table); err != nil {
		t.Fatalf("WriteRawCSV failed: %v", err)
	}

	table.Cells = [][]string{{"3"}}
	if err := s.WriteRawCSV(table); err != nil {
		t.Fatalf("WriteRawCSV failed: %v", err)
	}

	records := readCSV(t, s.RawPath())
	if len(records) != 2 {
		t.Errorf("expected prior output to be overwritten, got %d records", len(records))
	}
}

func TestWriteReport(t *testing.T) {
	s := newTestStorage(t)

	rec := guide.Row{
		Year: "1962-64", Make: "Ferrari", Model: "250 GTO", Category: "Race",
		RatingValue: guide.Some(4.9),
	}
	report := &Report{
		FetchedAt:      time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Indices:        []guide.IndexReading{{Name: "K500", Value: 312.7}, {Name: "K50", Value: 289.1}},
		ScrapedRows:    6,
		DroppedRows:    2,
		Top:            []guide.Row{rec},
		Recommendation: &rec,
	}

	if err := s.WriteReport(report); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(s.ReportPath())
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}

	if len(decoded.Indices) != 2 || decoded.Indices[0].Value != 312.7 {
		t.Errorf("unexpected indices: %+v", decoded.Indices)
	}
	if decoded.Recommendation == nil || decoded.Recommendation.Model != "250 GTO" {
		t.Errorf("unexpected recommendation: %+v", decoded.Recommendation)
	}
	if !decoded.Recommendation.RatingValue.Valid || decoded.Recommendation.RatingValue.Value != 4.9 {
		t.Errorf("rating did not survive the JSON round trip: %+v", decoded.Recommendation.RatingValue)
	}
}

func TestNew_CreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/out"

	if _, err := New(dir); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected output directory to exist: %v", err)
	}
}
