package entities

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseTagger runs prose's tokenizer, averaged-perceptron POS tagger and
// entity classifier over a single headline.
type ProseTagger struct{}

func (ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	tokens := make([]Token, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag, Label: tok.Label})
	}
	return tokens, nil
}
