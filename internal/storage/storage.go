package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/k500-guide/internal/guide"
)

const (
	RawFile    = "k500_raw.csv"
	CleanFile  = "k500_cleaned.csv"
	ReportFile = "k500_report.json"
)

// Storage handles persistence of scraped and cleaned guide data
type Storage struct {
	outDir string
}

// Report is the JSON run summary written next to the CSV outputs
type Report struct {
	FetchedAt      time.Time            `json:"fetched_at"`
	Indices        []guide.IndexReading `json:"indices"`
	ScrapedRows    int                  `json:"scraped_rows"`
	DroppedRows    int                  `json:"dropped_rows"`
	Top            []guide.Row          `json:"top"`
	Recommendation *guide.Row           `json:"recommendation,omitempty"`
}

// New creates a new Storage instance rooted at outDir
func New(outDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(outDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outDir = filepath.Join(home, outDir[2:])
	}
	if outDir == "" {
		outDir = "."
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		outDir: outDir,
	}, nil
}

// RawPath returns the path of the raw scrape dump
func (s *Storage) RawPath() string {
	return filepath.Join(s.outDir, RawFile)
}

// CleanPath returns the path of the cleaned dataset
func (s *Storage) CleanPath() string {
	return filepath.Join(s.outDir, CleanFile)
}

// ReportPath returns the path of the JSON run report
func (s *Storage) ReportPath() string {
	return filepath.Join(s.outDir, ReportFile)
}

// WriteRawCSV dumps the guide table exactly as scraped, header first.
// Prior output is overwritten.
func (s *Storage) WriteRawCSV(table *guide.Table) error {
	records := make([][]string, 0, len(table.Cells)+1)
	records = append(records, table.Columns)
	records = append(records, table.Cells...)
	return s.writeCSV(s.RawPath(), records)
}

// WriteCleanCSV writes the cleaned dataset, header first. The table is
// written as cleaned: derived columns appended and the Rating column numeric
// where those columns existed. Prior output is overwritten.
func (s *Storage) WriteCleanCSV(table *guide.Table) error {
	records := make([][]string, 0, len(table.Cells)+1)
	records = append(records, table.Columns)
	records = append(records, table.Cells...)
	return s.writeCSV(s.CleanPath(), records)
}

// WriteReport saves the JSON run summary
func (s *Storage) WriteReport(report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(s.ReportPath(), data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// writeCSV writes records to path, creating or truncating the file
func (s *Storage) writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
