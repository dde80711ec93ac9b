package drawer

import (
	"time"

	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline run.
type Drawer interface {
	// AddStep adds a node for a step, labelled with the step name.
	AddStep(id, label string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentID, childrenID string) error
	// MarkSkipped styles a step as skipped, together with the link leading to it.
	MarkSkipped(parentID, id string) error
	// MarkFailed styles a step as failed.
	MarkFailed(id string) error
	// Draw writes the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(id string, startTime time.Time) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}
