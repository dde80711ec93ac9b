package sentiment

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrEmptyLexicon is returned when a lexicon file defines no valences.
var ErrEmptyLexicon = errors.New("lexicon has no valences")

// Lexicon holds the valence of sentiment-bearing words and the words that negate them.
type Lexicon struct {
	Valences map[string]float64 `yaml:"valences"`
	Negators []string           `yaml:"negators"`
}

// LoadLexicon loads a lexicon from a YAML file:
//
//	valences:
//	  great: 3.1
//	  hate: -2.7
//	negators: [not, never]
//
// Words are lower-cased. DefaultNegators are used when the file lists none.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read lexicon %s", path)
	}

	var raw Lexicon
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "unable to parse lexicon %s", path)
	}

	if len(raw.Valences) == 0 {
		return nil, errors.Wrap(ErrEmptyLexicon, path)
	}

	lex := &Lexicon{
		Valences: make(map[string]float64, len(raw.Valences)),
		Negators: raw.Negators,
	}
	for word, valence := range raw.Valences {
		lex.Valences[strings.ToLower(strings.TrimSpace(word))] = valence
	}
	if len(lex.Negators) == 0 {
		lex.Negators = DefaultNegators
	}

	return lex, nil
}

// DefaultNegators flip the valence of the words following them.
var DefaultNegators = []string{
	"not", "no", "never", "nor", "neither", "nobody", "nothing", "without", "hardly",
}

// DefaultLexicon returns a small built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Valences: map[string]float64{
			"good": 1.9, "great": 3.1, "excellent": 2.7, "amazing": 2.8, "awesome": 3.1,
			"wonderful": 2.7, "fantastic": 2.6, "love": 3.2, "loved": 2.9, "like": 2.0,
			"nice": 1.8, "happy": 2.7, "glad": 2.0, "enjoy": 2.2, "best": 3.2,
			"beautiful": 2.9, "fun": 2.3, "brilliant": 2.8, "perfect": 2.7, "delightful": 2.9,
			"friendly": 2.2, "helpful": 1.8, "pleasant": 2.3, "superb": 3.1, "win": 2.8,
			"bad": -2.5, "terrible": -2.1, "awful": -2.0, "horrible": -2.5, "hate": -2.7,
			"hated": -3.2, "dislike": -1.6, "worst": -3.1, "sad": -2.1, "angry": -2.3,
			"ugly": -2.3, "poor": -2.1, "boring": -1.3, "annoying": -1.7, "disgusting": -2.4,
			"nasty": -2.6, "scary": -2.2, "fail": -2.5, "failed": -2.3, "broken": -1.8,
			"painful": -2.4, "dreadful": -2.7, "stupid": -2.4, "lose": -1.6, "wrong": -2.1,
		},
		Negators: DefaultNegators,
	}
}
