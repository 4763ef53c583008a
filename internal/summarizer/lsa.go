package summarizer

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	minDimensions  = 3
	reductionRatio = 1.0
	// Weight given to every dictionary term before scaling by its frequency.
	smoothing = 0.4
)

// Only alphabetic tokens, optionally with inner apostrophes or hyphens, count
// as words.
var wordPattern = regexp.MustCompile(`^\p{L}[\p{L}'-]*$`)

// LSASummarizer ranks sentences by latent semantic analysis and keeps the
// strongest few, in document order.
type LSASummarizer struct {
	segmenter Segmenter
	count     int
	stopWords map[string]struct{}
}

func NewLSASummarizer(segmenter Segmenter, count int, stopWords []string) *LSASummarizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &LSASummarizer{
		segmenter: segmenter,
		count:     count,
		stopWords: stop,
	}
}

// Summarize joins the headlines with single spaces and returns the selected
// sentences joined the same way.
func (s *LSASummarizer) Summarize(headlines []string) (string, error) {
	sentences, err := s.Select(headlines)
	if err != nil {
		return "", err
	}
	return strings.Join(sentences, " "), nil
}

// Select returns up to count sentences of the joined headlines with the
// highest salience, ordered as they appear in the text.
func (s *LSASummarizer) Select(headlines []string) ([]string, error) {
	if len(headlines) == 0 {
		return nil, nil
	}

	sentences, err := s.segmenter.Sentences(strings.Join(headlines, " "))
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, nil
	}

	words := make([][]string, len(sentences))
	for i, sentence := range sentences {
		tokens, err := s.segmenter.Words(sentence)
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			if wordPattern.MatchString(tok) {
				words[i] = append(words[i], strings.ToLower(tok))
			}
		}
	}

	dictionary := s.dictionary(words)
	if len(dictionary) == 0 {
		return nil, nil
	}

	ranks, err := rankSentences(termMatrix(dictionary, words))
	if err != nil {
		return nil, err
	}

	return best(sentences, ranks, s.count), nil
}

func (s *LSASummarizer) dictionary(words [][]string) map[string]int {
	dictionary := make(map[string]int)
	for _, sentence := range words {
		for _, w := range sentence {
			if _, stop := s.stopWords[w]; stop {
				continue
			}
			if _, seen := dictionary[w]; !seen {
				dictionary[w] = len(dictionary)
			}
		}
	}
	return dictionary
}

// termMatrix builds the words x sentences frequency matrix, each column
// scaled by its most frequent term.
func termMatrix(dictionary map[string]int, words [][]string) *mat.Dense {
	rows, cols := len(dictionary), len(words)
	m := mat.NewDense(rows, cols, nil)

	for col, sentence := range words {
		for _, w := range sentence {
			if row, ok := dictionary[w]; ok {
				m.Set(row, col, m.At(row, col)+1)
			}
		}
	}

	for col := 0; col < cols; col++ {
		maxFreq := mat.Max(m.ColView(col))
		if maxFreq == 0 {
			continue
		}
		for row := 0; row < rows; row++ {
			m.Set(row, col, smoothing+(1-smoothing)*m.At(row, col)/maxFreq)
		}
	}
	return m
}

func rankSentences(m *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, errors.New("summarizer: SVD did not converge")
	}

	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	dimensions := max(minDimensions, int(float64(len(sigma))*reductionRatio))
	powered := make([]float64, len(sigma))
	for i, s := range sigma {
		if i < dimensions {
			powered[i] = s * s
		}
	}

	_, cols := m.Dims()
	ranks := make([]float64, cols)
	for j := range ranks {
		var rank float64
		for i, p := range powered {
			vi := v.At(j, i)
			rank += p * vi * vi
		}
		ranks[j] = math.Sqrt(rank)
	}
	return ranks, nil
}

// best picks the count highest-ranked sentences; equal ranks keep text order.
func best(sentences []string, ranks []float64, count int) []string {
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranks[order[a]] > ranks[order[b]]
	})

	if count < len(order) {
		order = order[:count]
	}
	sort.Ints(order)

	selected := make([]string, len(order))
	for i, idx := range order {
		selected[i] = sentences[idx]
	}
	return selected
}
