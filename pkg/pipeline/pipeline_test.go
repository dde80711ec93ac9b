package pipeline_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipe/pkg/pipeline"
)

const dogsAndSnakes = "Dogs are great. I hate snakes."

var errHook = errors.New("hook failed")

func TestRunSentenceSplit(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit"})
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	out, ok := pipe.Output()
	require.True(t, ok)
	texts, ok := out.Texts()
	require.True(t, ok)
	assert.Equal(t, []string{"Dogs are great.", "I hate snakes."}, texts)
}

func TestRunSentenceSplitWordTokenize(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "wordTokenize"}, pipeline.WithHooks(rec))
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	snaps := pipe.Snapshots()
	assert.Equal(t, []pipeline.StepName{pipeline.SentenceSplit, pipeline.WordTokenize}, snaps.Names())
	assert.Equal(t, []string{"sentenceSplit", "wordTokenize"}, rec.visited("output"))

	tokens, ok := snaps.Get(pipeline.WordTokenize)
	require.True(t, ok)
	lists, ok := tokens.TokenLists()
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Dogs", "are", "great", "."}, {"I", "hate", "snakes", "."}}, lists)

	out, ok := pipe.Output()
	require.True(t, ok)
	assert.Equal(t, tokens, out)

	sentences, ok := snaps.Get(pipeline.SentenceSplit)
	require.True(t, ok)
	assert.Equal(t, pipeline.KindTexts, sentences.Kind())
}

func TestRunSentenceSplitScoreSentiment(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "scoreSentiment"})
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	v, ok := pipe.Snapshots().Get(pipeline.ScoreSentiment)
	require.True(t, ok)
	scores, ok := v.Scores()
	require.True(t, ok)
	require.Len(t, scores, 2)
	assert.Greater(t, scores[0], 0.0)
	assert.Less(t, scores[1], 0.0)
}

func TestRunEveryKnownStepRecordsOneSnapshotPerStep(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"split only":         {"sentenceSplit"},
		"split and tokenize": {"sentenceSplit", "wordTokenize"},
		"split and score":    {"sentenceSplit", "scoreSentiment"},
		"score raw text":     {"scoreSentiment"},
		"tokenize raw text":  {"wordTokenize"},
	}

	for name, steps := range tests {
		steps := steps
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := newRecorder(t)
			pipe, err := pipeline.New(dogsAndSnakes, steps, pipeline.WithHooks(rec))
			require.NoError(t, err)
			require.NoError(t, pipe.Run())

			assert.Equal(t, steps, rec.visited("prepare"))
			assert.Equal(t, steps, rec.visited("output"))

			names := []string{}
			for _, snap := range pipe.Snapshots().Entries() {
				names = append(names, string(snap.Step))
			}
			assert.Equal(t, steps, names)

			last, ok := pipe.Snapshots().Get(pipeline.StepName(steps[len(steps)-1]))
			require.True(t, ok)
			out, ok := pipe.Output()
			require.True(t, ok)
			assert.Equal(t, last, out)
		})
	}
}

func TestRunSkipsUnknownStep(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "bogus", "scoreSentiment"}, pipeline.WithHooks(rec))
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	assert.Equal(t, []pipeline.StepName{pipeline.SentenceSplit, pipeline.ScoreSentiment}, pipe.Snapshots().Names())
	_, ok := pipe.Snapshots().Get("bogus")
	assert.False(t, ok)

	out, ok := pipe.Output()
	require.True(t, ok)
	scores, ok := out.Scores()
	require.True(t, ok)
	assert.Len(t, scores, 2)

	warnings := pipe.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "bogus", warnings[0].Name)
	assert.Equal(t, 1, warnings[0].Index)
	assert.Equal(t, pipeline.SupportedSteps(), warnings[0].Supported)

	assert.Equal(t, []string{"bogus"}, rec.visited("skipped"))
	assert.Contains(t, rec.events, event{kind: "skipped", parent: "sentenceSplit", step: "bogus", index: 1})
	assert.Contains(t, rec.events, event{kind: "prepare", parent: "sentenceSplit", step: "scoreSentiment", index: 2})
}

func TestRunUnknownStepLeavesValueUntouched(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"bogus", "sentenceSplit"})
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	sentences, ok := pipe.Sentences()
	require.True(t, ok)
	assert.Equal(t, []string{"Dogs are great.", "I hate snakes."}, sentences)
}

func TestRunOnlyUnknownSteps(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"bogus", "other"})
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	out, ok := pipe.Output()
	require.True(t, ok)
	assert.Equal(t, pipeline.Text(dogsAndSnakes), out)
	assert.Equal(t, 0, pipe.Snapshots().Len())
	assert.Len(t, pipe.Warnings(), 2)
}

func TestRunStepNamesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"SentenceSplit", "sentence_split", "sentencesplit"})
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	assert.Len(t, pipe.Warnings(), 3)
	assert.Equal(t, 0, pipe.Snapshots().Len())
}

func TestRunLogsUnknownStep(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	runID := ulid.Make()
	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "bogus"},
		pipeline.WithLogger(zerolog.New(&buf)),
		pipeline.WithRunID(runID),
	)
	require.NoError(t, err)
	require.NoError(t, pipe.Run())
	assert.Equal(t, runID, pipe.RunID())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var found bool
	for _, line := range lines {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))

		if record["level"] != "warn" {
			continue
		}

		found = true
		assert.Equal(t, "bogus", record["step"])
		assert.EqualValues(t, 1, record["index"])
		assert.Equal(t, runID.String(), record["run_id"])
		assert.Equal(t, []any{"sentenceSplit", "wordTokenize", "scoreSentiment"}, record["supported"])
	}
	assert.True(t, found, "no warning logged")
}

func TestRunEmptySteps(t *testing.T) {
	t.Parallel()

	for _, steps := range [][]string{nil, {}} {
		pipe, err := pipeline.New(dogsAndSnakes, steps)
		require.NoError(t, err)
		require.NoError(t, pipe.Run())

		out, ok := pipe.Output()
		require.True(t, ok)
		text, ok := out.Text()
		require.True(t, ok)
		assert.Equal(t, dogsAndSnakes, text)
		assert.Equal(t, 0, pipe.Snapshots().Len())
	}
}

func TestOutputBeforeRun(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit"})
	require.NoError(t, err)

	out, ok := pipe.Output()
	assert.False(t, ok)
	assert.True(t, out.IsNone())
	assert.Equal(t, 0, pipe.Snapshots().Len())
}

func TestRunTwiceIsRejected(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "bogus"}, pipeline.WithHooks(rec))
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	firstOut, _ := pipe.Output()
	events := len(rec.events)

	err = pipe.Run()
	require.ErrorIs(t, err, pipeline.ErrAlreadyRun)

	out, ok := pipe.Output()
	require.True(t, ok)
	assert.Equal(t, firstOut, out)
	assert.Equal(t, 1, pipe.Snapshots().Len())
	assert.Len(t, pipe.Warnings(), 1)
	assert.Len(t, rec.events, events)
	assert.Equal(t, 1, rec.finished)
}

func TestRunTwiceAfterFailureIsRejected(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "sentenceSplit"})
	require.NoError(t, err)
	require.Error(t, pipe.Run())
	require.ErrorIs(t, pipe.Run(), pipeline.ErrAlreadyRun)
}

func TestRunOperationFailureAborts(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	steps := []string{"sentenceSplit", "wordTokenize", "scoreSentiment", "bogus", "sentenceSplit"}
	pipe, err := pipeline.New(dogsAndSnakes, steps, pipeline.WithHooks(rec))
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)

	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, pipeline.ScoreSentiment, stepErr.Name)
	assert.Equal(t, 2, stepErr.Index)

	var mismatch *pipeline.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, pipeline.KindTokens, mismatch.Got)
	assert.Equal(t, mismatch, errors.Cause(err))

	assert.Equal(t, []pipeline.StepName{pipeline.SentenceSplit, pipeline.WordTokenize}, pipe.Snapshots().Names())
	_, ok := pipe.Output()
	assert.False(t, ok)

	assert.Equal(t, []string{"sentenceSplit", "wordTokenize", "scoreSentiment"}, rec.visited("prepare"))
	assert.Empty(t, rec.visited("skipped"))
	assert.Empty(t, pipe.Warnings())
	assert.Equal(t, 1, rec.finished)
}

func TestRunStrictRejectsMismatchedKind(t *testing.T) {
	t.Parallel()

	scorer := &fixedScorer{score: 1}
	pipe, err := pipeline.New(dogsAndSnakes, []string{"scoreSentiment"},
		pipeline.WithStrict(true),
		pipeline.WithScorer(scorer),
	)
	require.NoError(t, err)

	err = pipe.Run()

	var mismatch *pipeline.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, pipeline.ScoreSentiment, mismatch.Step)
	assert.Equal(t, pipeline.KindText, mismatch.Got)
	assert.Equal(t, []pipeline.Kind{pipeline.KindTexts}, mismatch.Want)
	assert.Empty(t, scorer.calls)
	assert.Equal(t, 0, pipe.Snapshots().Len())
}

func TestRunStrictAcceptsWellFormedChain(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "bogus", "scoreSentiment"}, pipeline.WithStrict(true))
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	scores, ok := pipe.Scores()
	require.True(t, ok)
	assert.Len(t, scores, 2)
}

func TestRunPermissiveScoresCharacters(t *testing.T) {
	t.Parallel()

	scorer := &fixedScorer{score: 0.5}
	pipe, err := pipeline.New("héy", []string{"scoreSentiment"}, pipeline.WithScorer(scorer))
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	assert.Equal(t, []string{"h", "é", "y"}, scorer.calls)

	scores, ok := pipe.Scores()
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, scores)
}

func TestRunInjectedCollaborators(t *testing.T) {
	t.Parallel()

	splitter := splitterFunc(func(text string) []string { return strings.Split(text, "|") })
	tokenizer := tokenizerFunc(strings.Fields)

	pipe, err := pipeline.New("a b|c", []string{"sentenceSplit", "wordTokenize"},
		pipeline.WithSplitter(splitter),
		pipeline.WithTokenizer(tokenizer),
	)
	require.NoError(t, err)
	require.NoError(t, pipe.Run())

	sentences, ok := pipe.Sentences()
	require.True(t, ok)
	assert.Equal(t, []string{"a b", "c"}, sentences)

	tokens, ok := pipe.Tokens()
	require.True(t, ok)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, tokens)

	_, ok = pipe.Scores()
	assert.False(t, ok)
}

func TestNewHookFailure(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit"}, pipeline.WithHooks(&failingOption{}))
	require.ErrorIs(t, err, errHook)
}

func TestRunHookFailure(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	rec.failOn = "wordTokenize"

	pipe, err := pipeline.New(dogsAndSnakes, []string{"sentenceSplit", "wordTokenize"}, pipeline.WithHooks(rec))
	require.NoError(t, err)

	err = pipe.Run()
	require.ErrorIs(t, err, errHook)
	assert.Equal(t, []pipeline.StepName{pipeline.SentenceSplit}, pipe.Snapshots().Names())
	assert.Equal(t, 1, rec.finished)
}

func TestStepsIsACopy(t *testing.T) {
	t.Parallel()

	input := []string{"sentenceSplit", "wordTokenize"}
	pipe, err := pipeline.New(dogsAndSnakes, input)
	require.NoError(t, err)

	input[0] = "bogus"
	steps := pipe.Steps()
	steps[1] = "bogus"

	assert.Equal(t, []pipeline.StepName{pipeline.SentenceSplit, pipeline.WordTokenize}, pipe.Steps())
	assert.Equal(t, dogsAndSnakes, pipe.Input())
}

func TestRunIDsAreUnique(t *testing.T) {
	t.Parallel()

	first, err := pipeline.New("", nil)
	require.NoError(t, err)
	second, err := pipeline.New("", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID(), second.RunID())
}

type splitterFunc func(string) []string

func (f splitterFunc) Split(text string) []string {
	return f(text)
}

type tokenizerFunc func(string) []string

func (f tokenizerFunc) Tokenize(text string) []string {
	return f(text)
}
