package measure

import "time"

// Measure collects one Metric per step name.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
	// Names returns the step names in the order their metric was added.
	Names() []string
}

// Metric aggregates the executions of a step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddSkip()
	AVGDuration() time.Duration
	TotalDuration() time.Duration
	Executions() int64
	Skips() int64
	SetEndDuration(endDuration time.Duration)
	EndDuration() time.Duration
}
