// Package sentence splits text into sentences.
package sentence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAbbreviations are words that keep a following period from ending a sentence.
var DefaultAbbreviations = []string{
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs",
	"e.g", "i.e", "cf", "approx", "fig", "inc", "ltd", "co",
}

// Splitter splits text on sentence terminators.
//
// A sentence ends after a run of '.', '!' or '?', optionally followed by closing quotes or
// brackets, when the run is followed by whitespace or the end of the text. A single period after
// an abbreviation or a one-letter initial does not end a sentence.
type Splitter struct {
	abbreviations map[string]struct{}
}

// NewSplitter creates a splitter. Without abbreviations DefaultAbbreviations are used.
func NewSplitter(abbreviations ...string) *Splitter {
	if len(abbreviations) == 0 {
		abbreviations = DefaultAbbreviations
	}

	abbrevs := make(map[string]struct{}, len(abbreviations))
	for _, a := range abbreviations {
		abbrevs[strings.TrimSuffix(strings.ToLower(a), ".")] = struct{}{}
	}

	return &Splitter{abbreviations: abbrevs}
}

// Split returns the trimmed, non-empty sentences of text in order.
func (s *Splitter) Split(text string) []string {
	sentences := []string{}
	start := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isTerminator(r) {
			i += size
			continue
		}

		end := i + size
		single := r == '.'
		for end < len(text) {
			next, nextSize := utf8.DecodeRuneInString(text[end:])
			if isTerminator(next) {
				single = false
			} else if !isCloser(next) {
				break
			}
			end += nextSize
		}

		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(next) {
				i = end
				continue
			}
		}

		if single && s.keepsPeriod(text[start:i]) {
			i = end
			continue
		}

		if sentence := strings.TrimSpace(text[start:end]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
		i = end
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

// keepsPeriod reports whether the word right before a period is an abbreviation or an initial.
func (s *Splitter) keepsPeriod(before string) bool {
	word := before
	if idx := strings.LastIndexFunc(before, unicode.IsSpace); idx >= 0 {
		word = before[idx+1:]
	}
	word = strings.TrimLeftFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if word == "" {
		return false
	}

	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return unicode.IsUpper(r)
	}

	_, ok := s.abbreviations[strings.ToLower(word)]

	return ok
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '’', '”', '»':
		return true
	default:
		return false
	}
}
