package pipeline

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-textpipe/pkg/pipeline/model"
	"github.com/askiada/go-textpipe/pkg/text/sentence"
	"github.com/askiada/go-textpipe/pkg/text/sentiment"
	"github.com/askiada/go-textpipe/pkg/text/token"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newRunID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Now(), entropy)
}

// Pipeline applies a fixed sequence of named steps to a raw text.
//
// A Pipeline runs once. Construct a new one to process the same input again.
type Pipeline struct {
	input string
	steps []StepName

	ops       map[StepName]operation
	splitter  SentenceSplitter
	tokenizer WordTokenizer
	scorer    SentimentScorer

	snapshots *Snapshots
	output    Value
	started   bool
	done      bool
	warnings  []*UnresolvedStepError

	opts   []model.PipelineOption
	logger zerolog.Logger
	strict bool
	runID  ulid.ULID
}

// New creates a new pipeline over input running steps in order.
// Unknown step names are accepted here and skipped by Run.
func New(input string, steps []string, opts ...Option) (*Pipeline, error) {
	names := make([]StepName, len(steps))
	for i, s := range steps {
		names[i] = StepName(s)
	}

	pipe := &Pipeline{
		input:     input,
		steps:     names,
		snapshots: newSnapshots(),
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(pipe)
	}

	if pipe.splitter == nil {
		pipe.splitter = sentence.NewSplitter()
	}
	if pipe.tokenizer == nil {
		pipe.tokenizer = token.NewTokenizer()
	}
	if pipe.scorer == nil {
		pipe.scorer = sentiment.NewScorer(nil)
	}
	if pipe.runID.IsZero() {
		pipe.runID = newRunID()
	}
	pipe.ops = pipe.capabilities()

	for _, opt := range pipe.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Run applies every configured step in order.
//
// A step whose name is not supported is logged, recorded in Warnings and skipped without
// touching the running value. A failing step aborts the run: the returned *StepError wraps
// the failure, the steps after it are not attempted and Output stays unset.
func (p *Pipeline) Run() error {
	if p.started {
		return ErrAlreadyRun
	}
	p.started = true

	logger := p.logger.With().Str("run_id", p.runID.String()).Logger()
	current := Text(p.input)
	parent := model.StartStep

	for idx, name := range p.steps {
		step := &model.StepInfo{Name: string(name), Index: idx}

		op, ok := p.ops[name]
		if !ok {
			err := p.skip(logger, parent, step)
			if err != nil {
				return p.abort(logger, err)
			}

			continue
		}

		for _, opt := range p.opts {
			err := opt.PrepareStep(parent, step)
			if err != nil {
				return p.abort(logger, errors.Wrap(err, "unable to run prepare step function"))
			}
		}

		startFn := time.Now()
		out, err := p.invoke(name, op, current)
		endFn := time.Since(startFn)

		if err != nil {
			logger.Error().Err(err).Str("step", string(name)).Int("index", idx).Msg("step failed")

			return p.abort(logger, &StepError{Name: name, Index: idx, Err: err})
		}

		p.snapshots.set(name, out)
		current = out
		step.OutputKind = out.Kind().String()

		logger.Debug().
			Str("step", string(name)).
			Int("index", idx).
			Str("kind", step.OutputKind).
			Dur("elapsed", endFn).
			Msg("step applied")

		for _, opt := range p.opts {
			err := opt.OnStepOutput(parent, step, endFn)
			if err != nil {
				return p.abort(logger, errors.Wrap(err, "unable to run step output function"))
			}
		}

		parent = step
	}

	p.output = current
	p.done = true

	return p.finishRun()
}

func (p *Pipeline) invoke(name StepName, op operation, in Value) (Value, error) {
	if p.strict && !op.accept(in.Kind()) {
		return Value{}, &KindMismatchError{Step: name, Got: in.Kind(), Want: op.accepts}
	}

	return op.fn(in)
}

func (p *Pipeline) skip(logger zerolog.Logger, parent, step *model.StepInfo) error {
	unresolved := &UnresolvedStepError{
		Name:      step.Name,
		Index:     step.Index,
		Supported: SupportedSteps(),
	}
	p.warnings = append(p.warnings, unresolved)

	supported := make([]string, len(unresolved.Supported))
	for i, s := range unresolved.Supported {
		supported[i] = string(s)
	}
	logger.Warn().
		Str("step", step.Name).
		Int("index", step.Index).
		Strs("supported", supported).
		Msg("skipping unsupported step")

	for _, opt := range p.opts {
		err := opt.OnStepSkipped(parent, step)
		if err != nil {
			return errors.Wrap(err, "unable to run step skipped function")
		}
	}

	return nil
}

// abort finishes the options of a failed run and returns err.
func (p *Pipeline) abort(logger zerolog.Logger, err error) error {
	finishErr := p.finishRun()
	if finishErr != nil {
		logger.Warn().Err(finishErr).Msg("unable to finish pipeline options after failure")
	}

	return err
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

// Input returns the raw text the pipeline was built with.
func (p *Pipeline) Input() string {
	return p.input
}

// Steps returns the configured step names in order.
func (p *Pipeline) Steps() []StepName {
	steps := make([]StepName, len(p.steps))
	copy(steps, p.steps)

	return steps
}

// Output returns the value produced by the last executed step, or the input text when no
// step was executed. The boolean is false until Run completed without error.
func (p *Pipeline) Output() (Value, bool) {
	return p.output, p.done
}

// Snapshots returns the values recorded per step so far.
func (p *Pipeline) Snapshots() *Snapshots {
	return p.snapshots
}

// Warnings returns the steps skipped because their name could not be resolved.
func (p *Pipeline) Warnings() []*UnresolvedStepError {
	warnings := make([]*UnresolvedStepError, len(p.warnings))
	copy(warnings, p.warnings)

	return warnings
}

// RunID identifies the run in log records.
func (p *Pipeline) RunID() ulid.ULID {
	return p.runID
}

// Sentences returns the output of the sentenceSplit step.
func (p *Pipeline) Sentences() ([]string, bool) {
	v, ok := p.snapshots.Get(SentenceSplit)
	if !ok {
		return nil, false
	}

	return v.Texts()
}

// Tokens returns the output of the wordTokenize step.
func (p *Pipeline) Tokens() ([][]string, bool) {
	v, ok := p.snapshots.Get(WordTokenize)
	if !ok {
		return nil, false
	}

	return v.TokenLists()
}

// Scores returns the output of the scoreSentiment step.
func (p *Pipeline) Scores() ([]float64, bool) {
	v, ok := p.snapshots.Get(ScoreSentiment)
	if !ok {
		return nil, false
	}

	return v.Scores()
}
