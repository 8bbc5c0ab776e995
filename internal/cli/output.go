package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/k500-guide/internal/guide"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	FetchedAt      time.Time            `json:"fetched_at"`
	Indices        []guide.IndexReading `json:"indices"`
	Columns        []string             `json:"columns"`
	ScrapedRows    int                  `json:"scraped_rows"`
	DroppedRows    int                  `json:"dropped_rows"`
	Warning        string               `json:"warning,omitempty"`
	Top            []guide.Row          `json:"top,omitempty"`
	Recommendation *guide.Row           `json:"recommendation,omitempty"`
	RawPath        string               `json:"raw_csv"`
	CleanPath      string               `json:"clean_csv,omitempty"`
	ReportPath     string               `json:"report,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	for _, idx := range result.Indices {
		fmt.Fprintf(w, "Current %-4s index value: %g\n", idx.Name, idx.Value)
	}

	fmt.Fprintf(w, "\nGuide columns as scraped: %s\n", strings.Join(result.Columns, ", "))
	fmt.Fprintf(w, "Scraped %d rows\n", result.ScrapedRows)
	fmt.Fprintf(w, "[Saved] Raw scraped table -> %s\n", result.RawPath)

	if result.Warning != "" {
		fmt.Fprintf(w, "\n[Warning] %s\n", result.Warning)
	}

	if result.CleanPath != "" {
		fmt.Fprintf(w, "[Saved] Cleaned dataset -> %s (%d rows dropped)\n", result.CleanPath, result.DroppedRows)
	}

	if len(result.Top) > 0 {
		fmt.Fprintf(w, "\nTop %d cars by K500 Rating (as scraped):\n", len(result.Top))
		writeTopTable(w, result.Top)
	}

	if result.Recommendation != nil {
		writeRecommendation(w, result)
	}

	if verbose && result.ReportPath != "" {
		fmt.Fprintf(w, "\n[Saved] Run report -> %s\n", result.ReportPath)
	}

	return nil
}

// writeTopTable renders the top-rated rows as a bordered table
func writeTopTable(w io.Writer, rows []guide.Row) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Year", "Make", "Model", "Category", "0-60", "Top Speed", "Rating"})
	for i, r := range rows {
		t.AppendRow(table.Row{i + 1, r.Year, r.Make, r.Model, r.Category, r.ZeroToSixty, r.TopSpeed, r.RatingValue.String()})
	}
	t.Render()
}

// writeRecommendation prints the single recommended car
func writeRecommendation(w io.Writer, result *OutputResult) {
	rec := result.Recommendation

	fmt.Fprintf(w, "\n*** Recommendation based on scraped data ***\n")

	parts := make([]string, 0, len(result.Indices))
	for _, idx := range result.Indices {
		parts = append(parts, fmt.Sprintf("%s = %g", idx.Name, idx.Value))
	}
	fmt.Fprintf(w, "Current market indices: %s\n", strings.Join(parts, ", "))

	fmt.Fprintf(w, "Based on the K500 Guide ratings alone, a very strong candidate for a 'first classic car to buy' is:\n\n")
	fmt.Fprintf(w, "  Year range : %s\n", rec.Year)
	fmt.Fprintf(w, "  Make       : %s\n", rec.Make)
	fmt.Fprintf(w, "  Model      : %s\n", rec.Model)
	fmt.Fprintf(w, "  Category   : %s\n", rec.Category)
	fmt.Fprintf(w, "  0-60 mph   : %s\n", rec.ZeroToSixty)
	fmt.Fprintf(w, "  Top speed  : %s\n", rec.TopSpeed)
	fmt.Fprintf(w, "  Rating     : %s (higher is better)\n", rec.RatingValue.String())
}
