// Package token splits text into word and punctuation tokens.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits text into tokens.
//
// Runs of letters, digits and combining marks form a word. An apostrophe or hyphen between two
// word characters stays inside the word ("don't", "state-of-the-art"), and so does a period or
// comma between two digits ("3.14"). Every other non-space character is a token of its own.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the tokens of text in order, with their original case.
func (t *Tokenizer) Tokenize(text string) []string {
	runes := []rune(text)
	tokens := []string{}

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i + 1
			for j < len(runes) {
				if isWordRune(runes[j]) {
					j++
					continue
				}
				if j+1 < len(runes) && joins(runes[j-1], runes[j], runes[j+1]) {
					j += 2
					continue
				}

				break
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}

	return tokens
}

// Words returns the lower-cased word tokens of text, dropping punctuation.
func (t *Tokenizer) Words(text string) []string {
	tokens := t.Tokenize(text)
	words := tokens[:0]
	for _, tok := range tokens {
		if IsWord(tok) {
			words = append(words, strings.ToLower(tok))
		}
	}

	return words
}

// IsWord reports whether tok starts with a word character.
func IsWord(tok string) bool {
	if tok == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok)

	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func joins(prev, r, next rune) bool {
	switch r {
	case '\'', '’', '-':
		return isWordRune(prev) && isWordRune(next)
	case '.', ',':
		return unicode.IsDigit(prev) && unicode.IsDigit(next)
	default:
		return false
	}
}
