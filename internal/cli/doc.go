// Package cli implements the command-line interface for k500-guide.
//
// The cli package provides the Cobra-based CLI that runs the full pipeline:
// fetch the home and guide pages, extract the K500/K50 index readings, scrape
// and clean the guide table, rank cars by rating, persist raw and cleaned CSV
// dumps plus a JSON run report, and print the top list with a recommendation
// in text or JSON format.
package cli
