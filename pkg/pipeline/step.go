package pipeline

// StepName identifies a step of the capability set.
type StepName string

// Steps a pipeline knows how to run. Names are matched exactly and case-sensitively.
const (
	SentenceSplit  StepName = "sentenceSplit"
	WordTokenize   StepName = "wordTokenize"
	ScoreSentiment StepName = "scoreSentiment"
)

// SupportedSteps returns the capability set in declaration order.
func SupportedSteps() []StepName {
	return []StepName{SentenceSplit, WordTokenize, ScoreSentiment}
}

// SentenceSplitter splits a text into its sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// WordTokenizer splits a text into its tokens.
type WordTokenizer interface {
	Tokenize(text string) []string
}

// SentimentScorer gives a text a signed sentiment score.
type SentimentScorer interface {
	Score(text string) float64
}

type operation struct {
	accepts []Kind
	fn      func(in Value) (Value, error)
}

func (op operation) accept(kind Kind) bool {
	for _, k := range op.accepts {
		if k == kind {
			return true
		}
	}

	return false
}

// capabilities binds every step name to an operation of p.
func (p *Pipeline) capabilities() map[StepName]operation {
	return map[StepName]operation{
		SentenceSplit:  {accepts: []Kind{KindText}, fn: p.sentenceSplit},
		WordTokenize:   {accepts: []Kind{KindTexts}, fn: p.wordTokenize},
		ScoreSentiment: {accepts: []Kind{KindTexts}, fn: p.scoreSentiment},
	}
}

func (p *Pipeline) sentenceSplit(in Value) (Value, error) {
	text, ok := in.Text()
	if !ok {
		return Value{}, &KindMismatchError{Step: SentenceSplit, Got: in.Kind(), Want: []Kind{KindText}}
	}

	return Texts(p.splitter.Split(text)), nil
}

func (p *Pipeline) wordTokenize(in Value) (Value, error) {
	texts, ok := in.AsTexts()
	if !ok {
		return Value{}, &KindMismatchError{Step: WordTokenize, Got: in.Kind(), Want: []Kind{KindTexts}}
	}

	tokens := make([][]string, len(texts))
	for i, text := range texts {
		tokens[i] = p.tokenizer.Tokenize(text)
	}

	return TokenLists(tokens), nil
}

func (p *Pipeline) scoreSentiment(in Value) (Value, error) {
	texts, ok := in.AsTexts()
	if !ok {
		return Value{}, &KindMismatchError{Step: ScoreSentiment, Got: in.Kind(), Want: []Kind{KindTexts}}
	}

	scores := make([]float64, len(texts))
	for i, text := range texts {
		scores[i] = p.scorer.Score(text)
	}

	return Scores(scores), nil
}
