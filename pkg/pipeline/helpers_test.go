package pipeline_test

import (
	"testing"
	"time"

	"github.com/askiada/go-textpipe/pkg/pipeline/model"
)

type event struct {
	kind   string
	parent string
	step   string
	index  int
}

// recorder is a pipeline option remembering every hook call.
type recorder struct {
	t        *testing.T
	events   []event
	finished int
	failOn   string
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()

	return &recorder{t: t}
}

func (r *recorder) New() error {
	return nil
}

func (r *recorder) PrepareStep(parentStep, step *model.StepInfo) error {
	r.events = append(r.events, event{kind: "prepare", parent: parentStep.Name, step: step.Name, index: step.Index})
	if r.failOn == step.Name {
		return errHook
	}

	return nil
}

func (r *recorder) OnStepOutput(parentStep, step *model.StepInfo, _ time.Duration) error {
	r.events = append(r.events, event{kind: "output", parent: parentStep.Name, step: step.Name, index: step.Index})

	return nil
}

func (r *recorder) OnStepSkipped(parentStep, step *model.StepInfo) error {
	r.events = append(r.events, event{kind: "skipped", parent: parentStep.Name, step: step.Name, index: step.Index})

	return nil
}

func (r *recorder) Finish() error {
	r.finished++

	return nil
}

func (r *recorder) visited(kind string) []string {
	r.t.Helper()

	names := []string{}
	for _, e := range r.events {
		if e.kind == kind {
			names = append(names, e.step)
		}
	}

	return names
}

// failingOption fails when the pipeline is created.
type failingOption struct {
	recorder
}

func (f *failingOption) New() error {
	return errHook
}

// fixedScorer gives every text the same score and remembers what it scored.
type fixedScorer struct {
	score float64
	calls []string
}

func (s *fixedScorer) Score(text string) float64 {
	s.calls = append(s.calls, text)

	return s.score
}
