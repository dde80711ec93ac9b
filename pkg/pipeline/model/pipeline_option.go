package model

import "time"

// PipelineOption defines the interface for pipeline options.
//
// Hooks run synchronously on the goroutine calling Run. parentStep is the last step that
// produced a value, or StartStep when no step has produced one yet.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStep runs before a resolved step is invoked.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs after a step returned a value.
	OnStepOutput(parentStep, step *StepInfo, computationDuration time.Duration) error
	// OnStepSkipped runs when a step name could not be resolved.
	OnStepSkipped(parentStep, step *StepInfo) error
	// Finish runs after the pipeline is finished, also when a step failed.
	Finish() error
}
