package measure

import (
	"time"

	"github.com/askiada/go-textpipe/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	pm.AddMetric(model.StartStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(_, step *model.StepInfo, computationDuration time.Duration) error {
	pm.AddMetric(step.Name).AddDuration(computationDuration)

	return nil
}

func (pm *pipelineMeasure) OnStepSkipped(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name).AddSkip()

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	pm.AddMetric(model.EndStep.Name).SetEndDuration(time.Since(pm.startTime))

	return nil
}

// PipelineMeasure records the computation time of every step into measure.
// The "end" metric holds the duration of the whole run.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
