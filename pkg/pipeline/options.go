package pipeline

import (
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/askiada/go-textpipe/pkg/pipeline/model"
)

type Option func(p *Pipeline)

// WithLogger sets the logger receiving step diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithStrict makes the pipeline check the kind of the running value against the kinds a step
// accepts before invoking it. A mismatch fails the step with a *KindMismatchError.
func WithStrict(strict bool) Option {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

func WithSplitter(splitter SentenceSplitter) Option {
	return func(p *Pipeline) {
		p.splitter = splitter
	}
}

func WithTokenizer(tokenizer WordTokenizer) Option {
	return func(p *Pipeline) {
		p.tokenizer = tokenizer
	}
}

func WithScorer(scorer SentimentScorer) Option {
	return func(p *Pipeline) {
		p.scorer = scorer
	}
}

// WithHooks registers pipeline options such as measure.PipelineMeasure or drawer.PipelineDrawer.
func WithHooks(hooks ...model.PipelineOption) Option {
	return func(p *Pipeline) {
		p.opts = append(p.opts, hooks...)
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id ulid.ULID) Option {
	return func(p *Pipeline) {
		p.runID = id
	}
}
