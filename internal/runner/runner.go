package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ryosukesatoh/newsdigest/internal/entities"
	"github.com/ryosukesatoh/newsdigest/internal/exporter"
	"github.com/ryosukesatoh/newsdigest/internal/fetcher"
	"github.com/ryosukesatoh/newsdigest/internal/publisher"
	"github.com/ryosukesatoh/newsdigest/internal/summarizer"
)

// Extractor tallies named entities in a batch of headlines.
type Extractor interface {
	Extract(headlines []string) ([]entities.Entity, error)
}

// Runner orchestrates the fetch -> export -> summarize -> extract -> publish
// cycle for one query.
type Runner struct {
	topN       int
	fetcher    fetcher.Fetcher
	exporter   exporter.Exporter
	summarizer summarizer.Summarizer
	extractor  Extractor
	publishers []publisher.Publisher
	log        *logrus.Logger
}

func New(topN int, f fetcher.Fetcher, e exporter.Exporter, s summarizer.Summarizer, x Extractor, pubs []publisher.Publisher, log *logrus.Logger) *Runner {
	return &Runner{
		topN:       topN,
		fetcher:    f,
		exporter:   e,
		summarizer: s,
		extractor:  x,
		publishers: pubs,
		log:        log,
	}
}

// Run executes one query cycle. A failed search is reported as an empty
// result rather than an error; export and analysis failures abort the cycle.
// Nothing computed here outlives the call.
func (r *Runner) Run(ctx context.Context, topic, language string) (*publisher.Report, error) {
	log := r.log.WithFields(logrus.Fields{"topic": topic, "language": language})
	log.Info("Starting query cycle")

	report := &publisher.Report{Topic: topic, Language: language}

	articles, err := r.fetcher.Fetch(ctx, topic, language)
	if err != nil {
		log.WithError(err).Warn("Article search failed")
		report.FetchErr = err
		articles = nil
	}
	report.Articles = fetcher.Top(articles, r.topN)
	log.Infof("Fetched %d articles, keeping %d", len(articles), len(report.Articles))

	if len(report.Articles) > 0 {
		if err := r.analyze(report); err != nil {
			return nil, err
		}
	}

	// Continue with other publishers even if one fails
	var publishErrors []error
	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, report); err != nil {
			publishError := fmt.Errorf("publish via %T failed: %w", pub, err)
			publishErrors = append(publishErrors, publishError)
			log.WithError(publishError).Warn("Publisher failed")
		}
	}

	if len(publishErrors) == len(r.publishers) && len(r.publishers) > 0 {
		return nil, fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}

	log.Info("Query cycle completed")
	return report, nil
}

func (r *Runner) analyze(report *publisher.Report) error {
	path, err := r.exporter.Export(report.Topic, report.Articles)
	if err != nil {
		return fmt.Errorf("runner: export failed: %w", err)
	}
	report.ExportPath = path

	headlines := fetcher.Headlines(report.Articles)

	report.Summary, err = r.summarizer.Summarize(headlines)
	if err != nil {
		return fmt.Errorf("runner: summarize failed: %w", err)
	}

	report.Entities, err = r.extractor.Extract(headlines)
	if err != nil {
		return fmt.Errorf("runner: entity extraction failed: %w", err)
	}
	return nil
}
