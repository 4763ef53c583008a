// Package session drives the interactive prompt loop: one query cycle per
// topic entered, until the user types the exit sentinel or declines to
// continue.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ryosukesatoh/newsdigest/internal/publisher"
)

const (
	welcome        = "Welcome to the News Search Tool!"
	topicPrompt    = "Enter the topic you want to search for (or type 'exit' to quit): "
	languagePrompt = "Enter the language code (default: '%s'): "
	againPrompt    = "\nDo you want to search again? (yes/no): "
	goodbye        = "Exiting the application. Goodbye!"
	exitSentinel   = "exit"
)

// Cycle runs one query end to end.
type Cycle interface {
	Run(ctx context.Context, topic, language string) (*publisher.Report, error)
}

type Session struct {
	cycle           Cycle
	in              *bufio.Scanner
	out             io.Writer
	defaultLanguage string
	log             *logrus.Logger
}

func New(cycle Cycle, in io.Reader, out io.Writer, defaultLanguage string, log *logrus.Logger) *Session {
	return &Session{
		cycle:           cycle,
		in:              bufio.NewScanner(in),
		out:             out,
		defaultLanguage: defaultLanguage,
		log:             log,
	}
}

// Run loops until the user exits. End of input counts as exiting. A failed
// cycle is reported and the loop carries on.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(s.out, welcome)
		topic, ok := s.ask(topicPrompt)
		if !ok || strings.EqualFold(topic, exitSentinel) {
			return s.quit()
		}

		language, ok := s.ask(fmt.Sprintf(languagePrompt, s.defaultLanguage))
		if !ok {
			return s.quit()
		}
		if language == "" {
			language = s.defaultLanguage
		}

		fmt.Fprintf(s.out, "\nSearching for articles about '%s' in '%s'...\n", topic, language)
		if _, err := s.cycle.Run(ctx, topic, language); err != nil {
			s.log.WithError(err).WithField("topic", topic).Error("Query cycle failed")
			fmt.Fprintf(s.out, "Error while processing '%s': %v\n", topic, err)
		}

		answer, ok := s.ask(againPrompt)
		if !ok || strings.ToLower(answer) != "yes" {
			return s.quit()
		}
	}
}

// ask prints prompt and returns the next trimmed input line; ok is false at
// end of input.
func (s *Session) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) quit() error {
	fmt.Fprintln(s.out, goodbye)
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("session: failed to read input: %w", err)
	}
	return nil
}
