package model

// StepInfo describes one configured step of a pipeline run.
type StepInfo struct {
	// Name is the step identifier as configured by the caller.
	Name string
	// Index is the position of the step in the configured step list.
	Index int
	// OutputKind is the kind of value the step produced. Empty until the step succeeded.
	OutputKind string
}

var (
	StartStep = &StepInfo{Name: "start", Index: -1}
	EndStep   = &StepInfo{Name: "end", Index: -1}
)
