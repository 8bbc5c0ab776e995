// Package scraper provides HTTP fetching and HTML parsing for the K500 site.
//
// The scraper package fetches the public home page and guide page from
// k500.com. It extracts the K500 and K50 market index readings from the home
// page's visible text and scrapes the first HTML table on the guide page into
// an ordered cell matrix with its header row. Both requests are plain GETs
// with a stable User-Agent and a 30 second timeout; a non-2xx status is an
// error, never retried.
package scraper
