package publisher

import (
	"context"

	"github.com/ryosukesatoh/newsdigest/internal/entities"
	"github.com/ryosukesatoh/newsdigest/internal/fetcher"
)

// Report is everything one query cycle produced.
type Report struct {
	Topic    string
	Language string
	// FetchErr is set when the search failed; Articles is then empty.
	FetchErr   error
	Articles   []fetcher.Article
	ExportPath string
	Summary    string
	Entities   []entities.Entity
}

// Publisher publishes a report to some output destination.
type Publisher interface {
	Publish(ctx context.Context, report *Report) error
}
