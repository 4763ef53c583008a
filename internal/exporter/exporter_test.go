package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/ryosukesatoh/newsdigest/internal/fetcher"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "climate_change_articles.csv", FileName("climate change"))
	assert.Equal(t, "AI_articles.csv", FileName("AI"))
	assert.Equal(t, "a__b_articles.csv", FileName("a  b"))
}

func TestExportWritesHeaderAndRowsInOrder(t *testing.T) {
	dir := t.TempDir()
	articles := []fetcher.Article{
		{Title: "Heatwave hits Europe", URL: "https://example.com/1", PublishedAt: "2025-07-01T09:00:00Z"},
		{Title: `Leaders say "act now", again`, URL: "https://example.com/2", PublishedAt: "2025-06-30T18:15:00Z"},
		{Title: "Émissions en baisse", URL: "https://example.com/3", PublishedAt: "2025-06-29T07:45:00Z"},
	}

	path, err := NewCSVExporter(dir).Export("climate change", articles)
	assert.Equal(t, nil, err)
	assert.Equal(t, filepath.Join(dir, "climate_change_articles.csv"), path)

	file, err := os.Open(path)
	assert.Equal(t, nil, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	assert.Equal(t, nil, err)
	assert.Equal(t, [][]string{
		{"Title", "URL", "Published At"},
		{"Heatwave hits Europe", "https://example.com/1", "2025-07-01T09:00:00Z"},
		{`Leaders say "act now", again`, "https://example.com/2", "2025-06-30T18:15:00Z"},
		{"Émissions en baisse", "https://example.com/3", "2025-06-29T07:45:00Z"},
	}, records)
}

func TestExportOverwritesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	e := NewCSVExporter(dir)

	_, err := e.Export("ai", []fetcher.Article{{Title: "a"}, {Title: "b"}})
	assert.Equal(t, nil, err)
	path, err := e.Export("ai", []fetcher.Article{{Title: "c"}})
	assert.Equal(t, nil, err)

	data, err := os.ReadFile(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Title,URL,Published At\nc,,\n", string(data))
}

func TestExportMissingDirectory(t *testing.T) {
	e := NewCSVExporter(filepath.Join(t.TempDir(), "does", "not", "exist"))

	_, err := e.Export("ai", nil)
	assert.NotEqual(t, nil, err)
}
