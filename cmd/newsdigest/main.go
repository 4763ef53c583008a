package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ryosukesatoh/newsdigest/internal/config"
	"github.com/ryosukesatoh/newsdigest/internal/entities"
	"github.com/ryosukesatoh/newsdigest/internal/exporter"
	"github.com/ryosukesatoh/newsdigest/internal/fetcher"
	"github.com/ryosukesatoh/newsdigest/internal/logger"
	"github.com/ryosukesatoh/newsdigest/internal/publisher"
	"github.com/ryosukesatoh/newsdigest/internal/runner"
	"github.com/ryosukesatoh/newsdigest/internal/session"
	"github.com/ryosukesatoh/newsdigest/internal/summarizer"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	s, err := newSession(cfg, os.Stdin, os.Stdout, lg)
	if err != nil {
		lg.Fatalf("Failed to start: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		lg.Fatalf("Session ended with error: %v", err)
	}
}

// newSession wires the query pipeline behind the interactive loop.
func newSession(cfg *config.Config, in io.Reader, out io.Writer, lg *logrus.Logger) (*session.Session, error) {
	f, err := fetcher.New(cfg)
	if err != nil {
		return nil, err
	}

	r := runner.New(
		cfg.TopN,
		f,
		exporter.NewCSVExporter(cfg.ExportDir),
		summarizer.New(cfg),
		entities.New(cfg),
		[]publisher.Publisher{publisher.NewConsolePublisher(out)},
		lg,
	)

	return session.New(r, in, out, cfg.DefaultLanguage, lg), nil
}
