// Package sentiment scores the sentiment of a text with a word lexicon.
package sentiment

import (
	"math"
	"strings"

	"github.com/askiada/go-textpipe/pkg/text/token"
)

const (
	// negationWindow is how many preceding words are checked for a negator.
	negationWindow = 2
	// normAlpha approximates the maximum expected sum of valences.
	normAlpha = 15
)

// Scorer sums the valences of the words of a text.
type Scorer struct {
	valences  map[string]float64
	negators  map[string]struct{}
	tokenizer *token.Tokenizer
}

// NewScorer creates a scorer over lex, or over DefaultLexicon when lex is nil.
func NewScorer(lex *Lexicon) *Scorer {
	if lex == nil {
		lex = DefaultLexicon()
	}

	negators := make(map[string]struct{}, len(lex.Negators))
	for _, n := range lex.Negators {
		negators[strings.ToLower(n)] = struct{}{}
	}

	return &Scorer{
		valences:  lex.Valences,
		negators:  negators,
		tokenizer: token.NewTokenizer(),
	}
}

// Score returns the sentiment of text in (-1, 1): positive above 0, negative below 0 and 0
// when no word of the lexicon occurs. A word preceded by a negator within two words counts
// with the opposite sign.
func (s *Scorer) Score(text string) float64 {
	words := s.tokenizer.Words(text)

	var sum float64
	for i, word := range words {
		valence, ok := s.valences[word]
		if !ok {
			continue
		}
		if s.negated(words, i) {
			valence = -valence
		}
		sum += valence
	}

	return normalize(sum)
}

func (s *Scorer) negated(words []string, idx int) bool {
	for i := idx - 1; i >= 0 && i >= idx-negationWindow; i-- {
		if _, ok := s.negators[words[i]]; ok {
			return true
		}
		if strings.HasSuffix(words[i], "n't") || strings.HasSuffix(words[i], "n’t") {
			return true
		}
	}

	return false
}

func normalize(sum float64) float64 {
	if sum == 0 {
		return 0
	}

	return sum / math.Sqrt(sum*sum+normAlpha)
}
