// Package guide provides types for the K500 classic-car guide dataset.
//
// The guide package models the scraped guide table, its rows, and the K500/K50
// market index readings. Scraped cell values stay as free text; cleaned rows
// additionally carry derived numeric fields (0-60 time, top speed, rating) as
// optional Number values so that malformed cells degrade to "missing" rather
// than erroring.
package guide
