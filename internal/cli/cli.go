package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/k500-guide/internal/clean"
	"github.com/pfrederiksen/k500-guide/internal/filter"
	"github.com/pfrederiksen/k500-guide/internal/logger"
	"github.com/pfrederiksen/k500-guide/internal/rank"
	"github.com/pfrederiksen/k500-guide/internal/scraper"
	"github.com/pfrederiksen/k500-guide/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagBaseURL    string
	flagOutDir     string
	flagTop        int
	flagFormat     string
	flagMakes      []string
	flagCategories []string
	flagYearFrom   int
	flagYearTo     int
	flagVerbose    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "k500-guide",
		Short: "Scrape the K500 classic-car guide and rank cars by rating",
		Long: `A CLI tool that scrapes the K500 classic-car index site.
Extracts the current K500 and K50 index readings, scrapes the guide table,
cleans it, and reports the top-rated cars with a single recommendation.
Raw and cleaned datasets are written as CSV on every run.`,
		RunE: runGuide,
	}

	// Define flags
	cmd.Flags().StringVar(&flagBaseURL, "base-url", scraper.BaseURL, "Base URL of the K500 site")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", ".", "Directory for CSV and report output")
	cmd.Flags().IntVar(&flagTop, "top", 10, "Number of top-rated cars to report")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringSliceVar(&flagMakes, "make", nil, "Only rank cars whose make matches (repeatable)")
	cmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Only rank cars whose category matches (repeatable)")
	cmd.Flags().IntVar(&flagYearFrom, "year-from", 0, "Only rank cars from this year onwards")
	cmd.Flags().IntVar(&flagYearTo, "year-to", 0, "Only rank cars up to this year")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runGuide is the main command logic: fetch, extract, scrape, clean, rank,
// persist, report
func runGuide(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagTop < 1 {
		return fmt.Errorf("--top must be at least 1")
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	// Initialize storage
	store, err := storage.New(flagOutDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// Initialize scraper
	sc := scraper.New(flagBaseURL)

	// Extract the market index readings from the home page
	logger.Debug("fetching home page", logger.Fields{"base_url": flagBaseURL})

	indices, err := sc.FetchIndices()
	if err != nil {
		return fmt.Errorf("extracting index values: %w", err)
	}

	logger.Info("extracted index readings", logger.Fields{"count": len(indices)})

	// Scrape the guide table
	logger.Debug("fetching guide page", logger.Fields{"base_url": flagBaseURL})

	table, err := sc.FetchGuide()
	if err != nil {
		return fmt.Errorf("scraping guide table: %w", err)
	}

	logger.Info("scraped guide table", logger.Fields{
		"rows":    len(table.Cells),
		"columns": len(table.Columns),
	})

	// Columns are reported as scraped, before any renaming
	result := &OutputResult{
		FetchedAt:   time.Now().UTC(),
		Indices:     indices,
		Columns:     table.Columns,
		ScrapedRows: len(table.Cells),
		RawPath:     store.RawPath(),
	}

	out := cmd.OutOrStdout()

	// Persist the raw scrape before any mutation
	if err := store.WriteRawCSV(table); err != nil {
		return fmt.Errorf("saving raw table: %w", err)
	}

	// Schema drift is a degradation, not a failure: keep the scraped column
	// names and let each downstream step run only where its column survived
	if err := table.NormalizeColumns(); err != nil {
		logger.Warn("keeping original column names", logger.Fields{"reason": err.Error()})
		result.Warning = fmt.Sprintf("%v; keeping original column names", err)
	}

	// Clean by column name: derive numeric fields where their source columns
	// exist, drop rows without a usable rating where a Rating column exists
	cleanedTable, dropped := clean.TableByName(table)
	result.DroppedRows = dropped

	logger.Info("cleaned guide rows", logger.Fields{
		"kept":    len(cleanedTable.Cells),
		"dropped": dropped,
	})

	// The cleaned dataset is written on every successful run, degraded or not
	if err := store.WriteCleanCSV(cleanedTable); err != nil {
		return fmt.Errorf("saving cleaned table: %w", err)
	}
	result.CleanPath = store.CleanPath()

	// Without a Rating column there is nothing to rank on
	if _, ok := cleanedTable.ColumnIndex(clean.RatingColumn); !ok {
		msg := "'Rating' column not found; ranking will not work as intended"
		logger.Warn("skipping ranking", logger.Fields{"reason": msg})
		if result.Warning != "" {
			result.Warning += "; " + msg
		} else {
			result.Warning = msg
		}
		return WriteOutput(out, result, format, flagVerbose)
	}

	cleaned, _ := clean.Rows(cleanedTable.NamedRows())

	// Apply optional row filters before ranking
	f := &filter.Filter{
		Makes:      flagMakes,
		Categories: flagCategories,
		YearFrom:   flagYearFrom,
		YearTo:     flagYearTo,
	}
	if !f.IsEmpty() {
		before := len(cleaned)
		cleaned = f.Apply(cleaned)
		logger.Info("applied row filters", logger.Fields{
			"before": before,
			"after":  len(cleaned),
		})
		if before > 0 && len(cleaned) == 0 {
			return fmt.Errorf("no entries match the active filters")
		}
	}

	// Rank and pick the recommendation
	ranked, err := rank.Rank(cleaned, flagTop)
	if err != nil {
		return fmt.Errorf("ranking guide rows: %w", err)
	}

	result.Top = ranked.Top
	result.Recommendation = &ranked.Recommendation

	// Persist the run report
	if err := store.WriteReport(&storage.Report{
		FetchedAt:      result.FetchedAt,
		Indices:        indices,
		ScrapedRows:    result.ScrapedRows,
		DroppedRows:    dropped,
		Top:            ranked.Top,
		Recommendation: &ranked.Recommendation,
	}); err != nil {
		return fmt.Errorf("saving run report: %w", err)
	}
	result.ReportPath = store.ReportPath()

	// Write output
	if err := WriteOutput(out, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
