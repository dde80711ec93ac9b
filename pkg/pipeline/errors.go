package pipeline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrAlreadyRun is returned by Run when the pipeline has already been run.
var ErrAlreadyRun = errors.New("pipeline has already been run")

// UnresolvedStepError reports a configured step name that matches no known step.
// It never aborts a run: the step is skipped and the error is kept in Warnings.
type UnresolvedStepError struct {
	Name      string
	Index     int
	Supported []StepName
}

func (e *UnresolvedStepError) Error() string {
	names := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		names[i] = string(s)
	}

	return fmt.Sprintf("pipeline supports no step named %q (supported: %s)", e.Name, strings.Join(names, ", "))
}

// StepError reports the failure of a step operation. It aborts the run.
type StepError struct {
	Name  StepName
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %q: %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Cause returns the leaf error, for github.com/pkg/errors.Cause.
func (e *StepError) Cause() error {
	return e.Err
}

// KindMismatchError reports a step receiving a value it cannot work on.
type KindMismatchError struct {
	Step StepName
	Got  Kind
	Want []Kind
}

func (e *KindMismatchError) Error() string {
	want := make([]string, len(e.Want))
	for i, k := range e.Want {
		want[i] = k.String()
	}

	return fmt.Sprintf("%s expects %s input, got %s", e.Step, strings.Join(want, " or "), e.Got)
}
