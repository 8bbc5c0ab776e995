package scraper

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/k500-guide/internal/guide"
)

const (
	BaseURL   = "https://k500.com"
	HomePath  = "/"
	GuidePath = "/the-guide"
	UserAgent = "k500-guide-cli/1.0 (github.com/pfrederiksen/k500-guide)"
	Timeout   = 30 * time.Second
)

// Pattern per index label: the label token followed by a decimal value.
// First match wins. "K50" cannot match inside "K500 312.7" because the
// label there is followed by a digit, not whitespace.
var (
	k500Pattern = regexp.MustCompile(`K500\s+([0-9]+\.[0-9]+)`)
	k50Pattern  = regexp.MustCompile(`K50\s+([0-9]+\.[0-9]+)`)
)

// Scraper handles fetching and parsing the K500 index site
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a new Scraper for the given base URL. An empty baseURL falls
// back to the public site.
func New(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// fetch issues a GET for the given path and returns the response body
func (s *Scraper) fetch(path string) (io.ReadCloser, error) {
	url := s.baseURL + path

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	return resp.Body, nil
}

// FetchIndices fetches the home page and extracts the K500 and K50 index
// readings from its visible text. K500 comes first in the result.
func (s *Scraper) FetchIndices() ([]guide.IndexReading, error) {
	body, err := s.fetch(HomePath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseIndices(body)
}

// FetchGuide fetches the guide page and scrapes its first HTML table
func (s *Scraper) FetchGuide() (*guide.Table, error) {
	body, err := s.fetch(GuidePath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseGuide(body)
}

// parseIndices extracts the two index readings from home page HTML
func (s *Scraper) parseIndices(r io.Reader) ([]guide.IndexReading, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Visible text with all markup stripped and whitespace collapsed to
	// single spaces, so the label/value patterns see one flat token stream
	text := strings.Join(strings.Fields(doc.Text()), " ")

	readings := make([]guide.IndexReading, 0, 2)
	for _, idx := range []struct {
		name    string
		pattern *regexp.Regexp
	}{
		{"K500", k500Pattern},
		{"K50", k50Pattern},
	} {
		matches := idx.pattern.FindStringSubmatch(text)
		if matches == nil {
			return nil, fmt.Errorf("could not find %s index value on the home page", idx.name)
		}
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s index value %q: %w", idx.name, matches[1], err)
		}
		readings = append(readings, guide.IndexReading{Name: idx.name, Value: value})
	}

	return readings, nil
}

// parseGuide extracts the first table from guide page HTML
func (s *Scraper) parseGuide(r io.Reader) (*guide.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("no tables found on the guide page")
	}

	table := &guide.Table{}
	tables.First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := make([]string, 0, len(guide.ExpectedColumns))
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		// First non-empty row is the header, everything after is data
		if table.Columns == nil {
			table.Columns = cells
			return
		}
		table.Cells = append(table.Cells, cells)
	})

	if table.Columns == nil {
		return nil, fmt.Errorf("guide table has no rows")
	}

	return table, nil
}
