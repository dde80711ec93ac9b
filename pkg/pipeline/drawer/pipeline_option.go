package drawer

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
	"github.com/askiada/go-textpipe/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
	last      string
	pending   string
}

// stepID keeps steps sharing a name apart.
func stepID(step *model.StepInfo) string {
	if step.Index < 0 {
		return step.Name
	}

	return strconv.Itoa(step.Index) + ":" + step.Name
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name, model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.Name, model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	pd.startTime = time.Now()
	pd.last = model.StartStep.Name

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	id := stepID(step)

	err := pd.AddStep(id, step.Name)
	if err != nil {
		return err
	}
	err = pd.AddLink(stepID(parentStep), id)
	if err != nil {
		return err
	}

	pd.pending = id

	return nil
}

func (pd *pipelineDrawer) OnStepOutput(_, step *model.StepInfo, _ time.Duration) error {
	pd.last = stepID(step)
	pd.pending = ""

	return nil
}

func (pd *pipelineDrawer) OnStepSkipped(parentStep, step *model.StepInfo) error {
	id := stepID(step)
	parentID := stepID(parentStep)

	err := pd.AddStep(id, step.Name)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentID, id)
	if err != nil {
		return err
	}

	return pd.MarkSkipped(parentID, id)
}

func (pd *pipelineDrawer) Finish() error {
	if pd.pending != "" {
		err := pd.MarkFailed(pd.pending)
		if err != nil {
			return errors.Wrap(err, "unable to mark failed step")
		}
	} else {
		err := pd.AddLink(pd.last, model.EndStep.Name)
		if err != nil {
			return errors.Wrap(err, "unable to link end step")
		}
	}

	err := pd.SetTotalTime(model.EndStep.Name, pd.startTime)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the executed chain of steps once the run is finished.
// Skipped steps hang dashed off the step they followed, a failed step is drawn red.
// measure may be nil; when set, steps are annotated with their average duration.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
