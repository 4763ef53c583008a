package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ryosukesatoh/newsdigest/internal/config"
	"github.com/ryosukesatoh/newsdigest/internal/logger"
)

const newsAPIBody = `{
  "status": "ok",
  "totalResults": 3,
  "articles": [
    {"title": "Apple unveils new iPhone in California", "url": "https://example.com/1", "publishedAt": "2025-01-15T08:00:00Z"},
    {"title": "California approves new climate law", "url": "https://example.com/2", "publishedAt": "2025-01-14T08:00:00Z"},
    {"title": "Apple reports record profit", "url": "https://example.com/3", "publishedAt": "2025-01-13T08:00:00Z"}
  ]
}`

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "test_key")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.NewsAPI.BaseURL = baseURL
	cfg.ExportDir = t.TempDir()
	return cfg
}

func TestSessionEndToEnd(t *testing.T) {
	color.NoColor = true

	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(newsAPIBody))
	}))
	defer ts.Close()

	cfg := testConfig(t, ts.URL)
	var out bytes.Buffer

	s, err := newSession(cfg, strings.NewReader("climate change\n\nno\n"), &out, logger.Discard())
	if err != nil {
		t.Fatalf("newSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, want := range []string{"q=climate+change", "language=en", "sortBy=relevancy", "apiKey=test_key"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("Expected query to contain %q, got %q", want, gotQuery)
		}
	}

	output := out.String()
	for _, want := range []string{
		"1. Apple unveils new iPhone in California (2025-01-15T08:00:00Z)",
		"3. Apple reports record profit (2025-01-13T08:00:00Z)",
		"Summary of Top Headlines:",
		"Named Entities:",
		"Exiting the application. Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}

	file, err := os.Open(filepath.Join(cfg.ExportDir, "climate_change_articles.csv"))
	if err != nil {
		t.Fatalf("Expected export file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d records", len(records))
	}
	if records[1][0] != "Apple unveils new iPhone in California" || records[3][0] != "Apple reports record profit" {
		t.Errorf("Rows out of order: %v", records)
	}
}

func TestSessionSearchFailureContinues(t *testing.T) {
	color.NoColor = true

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer ts.Close()

	cfg := testConfig(t, ts.URL)
	var out bytes.Buffer

	s, err := newSession(cfg, strings.NewReader("ai\nen\nno\n"), &out, logger.Discard())
	if err != nil {
		t.Fatalf("newSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Error during API request:") || !strings.Contains(output, "No articles found.") {
		t.Errorf("Expected diagnostic and no-articles notice, got:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(cfg.ExportDir, "ai_articles.csv")); !os.IsNotExist(err) {
		t.Errorf("Expected no export file, stat err = %v", err)
	}
}

func TestNewSessionRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{}
	if _, err := newSession(cfg, strings.NewReader(""), &bytes.Buffer{}, logger.Discard()); err == nil {
		t.Fatal("Expected error without API key")
	}
}
