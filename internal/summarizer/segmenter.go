package summarizer

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Segmenter splits text into sentences and sentences into word tokens.
type Segmenter interface {
	Sentences(text string) ([]string, error)
	Words(sentence string) ([]string, error)
}

// ProseSegmenter uses prose's punkt sentence boundary detection and its
// Treebank-style tokenizer.
type ProseSegmenter struct{}

func (ProseSegmenter) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("summarizer: failed to segment text: %w", err)
	}

	sentences := make([]string, 0, len(doc.Sentences()))
	for _, s := range doc.Sentences() {
		sentences = append(sentences, s.Text)
	}
	return sentences, nil
}

func (ProseSegmenter) Words(sentence string) ([]string, error) {
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("summarizer: failed to tokenize sentence: %w", err)
	}

	words := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		words = append(words, tok.Text)
	}
	return words, nil
}
