package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestParseIndices(t *testing.T) {
	// Load test fixture
	data, err := os.ReadFile("../../testdata/fixtures/home.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := New("")
	readings, err := s.parseIndices(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parseIndices failed: %v", err)
	}

	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	if readings[0].Name != "K500" || readings[0].Value != 312.7 {
		t.Errorf("expected K500 = 312.7, got %s = %v", readings[0].Name, readings[0].Value)
	}
	if readings[1].Name != "K50" || readings[1].Value != 289.1 {
		t.Errorf("expected K50 = 289.1, got %s = %v", readings[1].Name, readings[1].Value)
	}
}

func TestParseIndices_FlatText(t *testing.T) {
	// The K50 label must not match inside the K500 token
	html := `<html><body><p>Market update: K500 312.7 points, K50 289.1 points as of today.</p></body></html>`

	s := New("")
	readings, err := s.parseIndices(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseIndices failed: %v", err)
	}

	if readings[0].Value != 312.7 {
		t.Errorf("expected K500 value 312.7, got %v", readings[0].Value)
	}
	if readings[1].Value != 289.1 {
		t.Errorf("expected K50 value 289.1, got %v", readings[1].Value)
	}
}

func TestParseIndices_Missing(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "no indices at all",
			html: `<html><body><p>Nothing to see here.</p></body></html>`,
			want: "K500",
		},
		{
			name: "K50 missing",
			html: `<html><body><p>K500 312.7 points only today.</p></body></html>`,
			want: "K50",
		},
	}

	s := New("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.parseIndices(strings.NewReader(tt.html))
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to name %s, got %q", tt.want, err)
			}
		})
	}
}

func TestParseGuide(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/guide.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := New("")
	table, err := s.parseGuide(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parseGuide failed: %v", err)
	}

	// Only the first table on the page should be scraped
	wantColumns := []string{"Year", "Make", "Model", "Body", "Category", "0-60", "Top Speed", "Rating"}
	if len(table.Columns) != len(wantColumns) {
		t.Fatalf("expected %d columns, got %d (%v)", len(wantColumns), len(table.Columns), table.Columns)
	}
	for i, want := range wantColumns {
		if table.Columns[i] != want {
			t.Errorf("column %d: expected %q, got %q", i, want, table.Columns[i])
		}
	}

	if len(table.Cells) != 6 {
		t.Fatalf("expected 6 data rows, got %d", len(table.Cells))
	}

	// Rows must keep scrape order
	if table.Cells[0][1] != "Jaguar" {
		t.Errorf("expected first row make Jaguar, got %q", table.Cells[0][1])
	}
	if table.Cells[5][2] != "240Z" {
		t.Errorf("expected last row model 240Z, got %q", table.Cells[5][2])
	}

	// Normalization hasn't run yet
	if table.Named {
		t.Error("scraped table should not be marked Named")
	}
}

func TestParseGuide_NoTables(t *testing.T) {
	html := `<html><body><p>The guide is temporarily unavailable.</p></body></html>`

	s := New("")
	_, err := s.parseGuide(strings.NewReader(html))
	if err == nil {
		t.Fatal("expected an error for a page without tables")
	}
	if !strings.Contains(err.Error(), "no tables") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetch(t *testing.T) {
	home, err := os.ReadFile("../../testdata/fixtures/home.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write(home)
		case "/the-guide":
			http.Error(w, "gone fishing", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := New(srv.URL)

	readings, err := s.FetchIndices()
	if err != nil {
		t.Fatalf("FetchIndices failed: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	// Non-2xx status is fatal, never retried
	if _, err := s.FetchGuide(); err == nil {
		t.Fatal("expected an error for a 503 response")
	} else if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status code in error, got %q", err)
	}
}

func TestNew_BaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", BaseURL},
		{"https://example.com", "https://example.com"},
		{"https://example.com/", "https://example.com"},
	}

	for _, tt := range tests {
		s := New(tt.in)
		if s.baseURL != tt.want {
			t.Errorf("New(%q).baseURL = %q, expected %q", tt.in, s.baseURL, tt.want)
		}
	}
}
