package summarizer

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestProseSegmenterSentences(t *testing.T) {
	sentences, err := ProseSegmenter{}.Sentences("Apple reports record profit. Markets rally on the news.")
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Apple reports record profit.", "Markets rally on the news."}, sentences)
}

func TestProseSegmenterWords(t *testing.T) {
	words, err := ProseSegmenter{}.Words("Apple reports record profit")
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Apple", "reports", "record", "profit"}, words)
}

func TestProseSummarizerReturnsWholeHeadlineRun(t *testing.T) {
	// Headlines rarely end with a full stop, so the joined text is one sentence.
	s := NewLSASummarizer(ProseSegmenter{}, 3, nil)
	headlines := []string{
		"Apple unveils new iPhone in California",
		"California approves new climate law",
		"Apple reports record profit",
	}

	summary, err := s.Summarize(headlines)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple unveils new iPhone in California California approves new climate law Apple reports record profit", summary)
}
