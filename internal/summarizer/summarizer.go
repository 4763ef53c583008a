package summarizer

import (
	"github.com/ryosukesatoh/newsdigest/internal/config"
)

// Summarizer condenses a batch of headlines into a short extractive summary.
type Summarizer interface {
	Summarize(headlines []string) (string, error)
}

// New creates the LSA summarizer described by the configuration.
func New(cfg *config.Config) Summarizer {
	return NewLSASummarizer(ProseSegmenter{}, cfg.Summary.Sentences, StopWords(cfg.Summary.StopWords))
}
