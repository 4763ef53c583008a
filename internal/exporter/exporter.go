package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryosukesatoh/newsdigest/internal/fetcher"
)

var header = []string{"Title", "URL", "Published At"}

// Exporter persists a query's articles and reports where they went.
type Exporter interface {
	Export(topic string, articles []fetcher.Article) (string, error)
}

// FileName derives the export file name from the topic: spaces become
// underscores and "_articles.csv" is appended.
func FileName(topic string) string {
	return strings.ReplaceAll(topic, " ", "_") + "_articles.csv"
}

// CSVExporter writes one UTF-8 CSV file per query into Dir.
type CSVExporter struct {
	Dir string
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{Dir: dir}
}

// Export overwrites <Dir>/<FileName(topic)> with a header row followed by one
// row per article, in the order given.
func (e *CSVExporter) Export(topic string, articles []fetcher.Article) (string, error) {
	path := filepath.Join(e.Dir, FileName(topic))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("exporter: failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("exporter: failed to write header: %w", err)
	}
	for _, a := range articles {
		if err := w.Write([]string{a.Title, a.URL, a.PublishedAt}); err != nil {
			return "", fmt.Errorf("exporter: failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("exporter: failed to flush %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("exporter: failed to close %s: %w", path, err)
	}
	return path, nil
}
