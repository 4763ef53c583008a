package fetcher

import (
	"context"

	"github.com/ryosukesatoh/newsdigest/internal/config"
)

// Article is a single search hit as returned by the news source. PublishedAt
// is kept verbatim as the text the API sent.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetcher searches a news source for articles about a topic, most relevant first.
type Fetcher interface {
	Fetch(ctx context.Context, topic, language string) ([]Article, error)
}

// New creates a new fetcher based on the configuration
func New(cfg *config.Config) (Fetcher, error) {
	if cfg.NewsAPI.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	return NewNewsAPIFetcher(cfg.NewsAPI), nil
}

// Headlines projects the titles out of articles, preserving order.
func Headlines(articles []Article) []string {
	headlines := make([]string, len(articles))
	for i, a := range articles {
		headlines[i] = a.Title
	}
	return headlines
}

// Top returns at most n leading articles. A negative n keeps them all.
func Top(articles []Article, n int) []Article {
	if n >= 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
