// Package entities finds people, organizations and places in headlines and
// tallies how often each surface form occurs.
package entities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ryosukesatoh/newsdigest/internal/config"
)

// Token is a word with its part-of-speech tag and IOB entity label
// ("B-PERSON", "I-GPE", "O").
type Token struct {
	Text  string
	Tag   string
	Label string
}

// Tagger tokenizes text and labels each token.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// Span is a run of contiguous tokens forming one named entity.
type Span struct {
	Label  string
	Tokens []string
}

// Text is the entity's surface form: its tokens joined by single spaces.
func (s Span) Text() string {
	return strings.Join(s.Tokens, " ")
}

// Entity is one tally entry.
type Entity struct {
	Text  string
	Count int
}

func (e Entity) String() string {
	return fmt.Sprintf("(%q, %d)", e.Text, e.Count)
}

// Chunk groups IOB-labelled tokens into spans. Adjacent tokens of the same
// type form one span whether labelled B- or I-. An I- token of another type
// joins the open span, which keeps the type it started with.
func Chunk(tokens []Token) []Span {
	var spans []Span
	open := false

	for _, tok := range tokens {
		prefix, kind, ok := strings.Cut(tok.Label, "-")
		if !ok || (prefix != "B" && prefix != "I") {
			open = false
			continue
		}
		if open {
			last := &spans[len(spans)-1]
			if last.Label == kind || prefix == "I" {
				last.Tokens = append(last.Tokens, tok.Text)
				continue
			}
		}
		spans = append(spans, Span{Label: kind, Tokens: []string{tok.Text}})
		open = true
	}
	return spans
}

// Extractor counts named entities across a batch of headlines.
type Extractor struct {
	tagger Tagger
	labels map[string]struct{}
}

func NewExtractor(tagger Tagger, labels []string) *Extractor {
	keep := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		keep[l] = struct{}{}
	}
	return &Extractor{tagger: tagger, labels: keep}
}

// New creates an extractor backed by prose, keeping the configured labels.
func New(cfg *config.Config) *Extractor {
	return NewExtractor(ProseTagger{}, cfg.Entities.Labels)
}

// Extract tags each headline independently and returns every retained entity
// with its occurrence count, most frequent first. Entities with equal counts
// stay in the order they were first seen. Surface forms are compared exactly.
func (e *Extractor) Extract(headlines []string) ([]Entity, error) {
	var tally []Entity
	index := make(map[string]int)

	for _, headline := range headlines {
		tokens, err := e.tagger.Tag(headline)
		if err != nil {
			return nil, fmt.Errorf("entities: failed to tag %q: %w", headline, err)
		}

		for _, span := range Chunk(tokens) {
			if _, ok := e.labels[span.Label]; !ok {
				continue
			}
			text := span.Text()
			if i, seen := index[text]; seen {
				tally[i].Count++
				continue
			}
			index[text] = len(tally)
			tally = append(tally, Entity{Text: text, Count: 1})
		}
	}

	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})
	return tally, nil
}
