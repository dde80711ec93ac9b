package pipeline

// Kind tags the payload carried by a Value.
type Kind int

const (
	// KindNone is the absent value.
	KindNone Kind = iota
	// KindText is a single text.
	KindText
	// KindTexts is an ordered sequence of texts.
	KindTexts
	// KindTokens is an ordered sequence of token sequences.
	KindTokens
	// KindScores is an ordered sequence of numeric scores.
	KindScores
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindText:
		return "text"
	case KindTexts:
		return "texts"
	case KindTokens:
		return "tokens"
	case KindScores:
		return "scores"
	default:
		return "unknown"
	}
}

// Value is the running value threaded between steps.
// The zero Value is the absent value.
//
// Slices held by a Value are shared, not copied.
type Value struct {
	kind   Kind
	text   string
	texts  []string
	tokens [][]string
	scores []float64
}

// Text wraps a single text.
func Text(text string) Value {
	return Value{kind: KindText, text: text}
}

// Texts wraps an ordered sequence of texts.
func Texts(texts []string) Value {
	return Value{kind: KindTexts, texts: texts}
}

// TokenLists wraps one token sequence per text.
func TokenLists(tokens [][]string) Value {
	return Value{kind: KindTokens, tokens: tokens}
}

// Scores wraps an ordered sequence of scores.
func Scores(scores []float64) Value {
	return Value{kind: KindScores, scores: scores}
}

// Kind returns the tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// Text returns the single text payload.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Texts returns the text sequence payload.
func (v Value) Texts() ([]string, bool) {
	return v.texts, v.kind == KindTexts
}

// TokenLists returns the token sequences payload.
func (v Value) TokenLists() ([][]string, bool) {
	return v.tokens, v.kind == KindTokens
}

// Scores returns the score sequence payload.
func (v Value) Scores() ([]float64, bool) {
	return v.scores, v.kind == KindScores
}

// AsTexts views the value as a sequence of texts, the input shape of the per-text steps.
//
// A sequence of texts is returned as is. A single text is treated as the sequence of its
// characters, one element per rune. Every other kind cannot be viewed as texts.
func (v Value) AsTexts() ([]string, bool) {
	switch v.kind {
	case KindTexts:
		return v.texts, true
	case KindText:
		runes := []rune(v.text)
		chars := make([]string, len(runes))
		for i, r := range runes {
			chars[i] = string(r)
		}

		return chars, true
	default:
		return nil, false
	}
}

// Len returns the number of elements of a sequence value, 1 for a text and 0 for none.
func (v Value) Len() int {
	switch v.kind {
	case KindText:
		return 1
	case KindTexts:
		return len(v.texts)
	case KindTokens:
		return len(v.tokens)
	case KindScores:
		return len(v.scores)
	default:
		return 0
	}
}

// Interface returns the payload as a plain Go value, nil for none.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindTexts:
		return v.texts
	case KindTokens:
		return v.tokens
	case KindScores:
		return v.scores
	default:
		return nil
	}
}
