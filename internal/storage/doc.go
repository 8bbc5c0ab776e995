// Package storage provides file persistence for guide scrape runs.
//
// The storage package writes three artifacts into a configurable output
// directory on every successful run, overwriting prior output: the raw
// scraped table (k500_raw.csv), the cleaned dataset with derived numeric
// columns (k500_cleaned.csv), and a JSON run report with the index readings
// and the ranked result (k500_report.json).
package storage
