package drawer

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
)

// DOTDrawer is a drawer that renders the pipeline graph as a Graphviz DOT document.
type DOTDrawer struct {
	graph      graph.Graph[string, string]
	nodes      map[string]map[string]string
	order      []string
	attributes map[string]string
	fileName   string
	writer     io.Writer
}

// NewDOTDrawer creates a drawer writing the DOT document to fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	d := newDOTDrawer()
	d.fileName = fileName

	return d
}

// NewDOTWriterDrawer creates a drawer writing the DOT document to wrt.
func NewDOTWriterDrawer(wrt io.Writer) *DOTDrawer {
	d := newDOTDrawer()
	d.writer = wrt

	return d
}

func newDOTDrawer() *DOTDrawer {
	return &DOTDrawer{
		graph:      graph.New(graph.StringHash, graph.Directed()),
		nodes:      make(map[string]map[string]string),
		attributes: map[string]string{"rankdir": "LR"},
	}
}

// SetGraphAttribute sets a graph level attribute such as rankdir.
func (d *DOTDrawer) SetGraphAttribute(key, value string) {
	d.attributes[key] = value
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(id, label string) error {
	err := d.graph.AddVertex(id)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", id)
	}

	d.nodes[id] = map[string]string{"label": label}
	d.order = append(d.order, id)

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentID, childrenID string) error {
	err := d.graph.AddEdge(parentID, childrenID)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentID, childrenID)
	}

	return nil
}

// MarkSkipped draws the step and its incoming link dashed and grey.
func (d *DOTDrawer) MarkSkipped(parentID, id string) error {
	attrs, ok := d.nodes[id]
	if !ok {
		return errors.Wrapf(graph.ErrVertexNotFound, "unable to mark %s as skipped", id)
	}

	attrs["style"] = "dashed"
	attrs["color"] = "grey"
	attrs["fontcolor"] = "grey"

	err := d.graph.UpdateEdge(parentID, id,
		graph.EdgeAttribute("style", "dashed"),
		graph.EdgeAttribute("color", "grey"),
	)
	if err != nil {
		return errors.Wrap(err, "unable to update edge")
	}

	return nil
}

// MarkFailed draws the step in red.
func (d *DOTDrawer) MarkFailed(id string) error {
	attrs, ok := d.nodes[id]
	if !ok {
		return errors.Wrapf(graph.ErrVertexNotFound, "unable to mark %s as failed", id)
	}

	attrs["color"] = "red"
	attrs["fontcolor"] = "red"

	return nil
}

// Draw writes the DOT document.
func (d *DOTDrawer) Draw() error {
	wrt := d.writer
	if wrt == nil {
		file, err := os.Create(d.fileName)
		if err != nil {
			return errors.Wrapf(err, "unable to create file %s", d.fileName)
		}
		defer file.Close()

		wrt = file
	}

	err := d.dot(wrt)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.fileName)
	}

	return nil
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(id string, startTime time.Time) error {
	attrs, ok := d.nodes[id]
	if !ok {
		return errors.Wrapf(graph.ErrVertexNotFound, "unable to set total time of %s", id)
	}

	attrs["xlabel"] = time.Since(startTime).String()

	return nil
}

const maxRGB = 240

// AddMeasure labels every executed step with its average duration and colours it from
// blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	avgs := make(map[string]time.Duration)

	var minValue, maxValue time.Duration

	for _, id := range d.order {
		mt := msr.GetMetric(d.nodes[id]["label"])
		if mt == nil {
			continue
		}

		if end := mt.EndDuration(); end > 0 {
			d.nodes[id]["xlabel"] = "end: " + end.String()
		}

		avg := mt.AVGDuration()
		if avg == 0 {
			continue
		}

		if len(avgs) == 0 || avg < minValue {
			minValue = avg
		}
		if avg > maxValue {
			maxValue = avg
		}
		avgs[id] = avg
	}

	for id, avg := range avgs {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		heat, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		d.nodes[id]["xlabel"] = avg.String()
		d.nodes[id]["color"] = heat.ToHEX().String()
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict digraph {
{{range $k, $v := .Attributes}}	{{$k}}="{{esc $v}}";
{{end}}{{range .Nodes}}	"{{esc .ID}}" [ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}}{{range $k, $v := .Attributes}}{{$k}}="{{esc $v}}", {{end}}];
{{end}}{{range .Edges}}	"{{esc .Source}}" -> "{{esc .Target}}" [ {{range $k, $v := .Attributes}}{{$k}}="{{esc $v}}", {{end}}];
{{end}}}
`

type description struct {
	Attributes map[string]string
	Nodes      []node
	Edges      []edge
}

type node struct {
	ID             string
	Attributes     map[string]string
	HTMLAttributes map[string]string
}

type edge struct {
	Source     string
	Target     string
	Attributes map[string]string
}

func (d *DOTDrawer) dot(wrt io.Writer) error {
	desc, err := d.generateDOT()
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func (d *DOTDrawer) generateDOT() (description, error) {
	desc := description{
		Attributes: d.attributes,
		Nodes:      make([]node, 0, len(d.order)),
	}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	position := make(map[string]int, len(d.order))
	for i, id := range d.order {
		position[id] = i
	}

	for _, id := range d.order {
		attrs := make(map[string]string, len(d.nodes[id]))
		for k, v := range d.nodes[id] {
			attrs[k] = v
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := attrs["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`,
				html.EscapeString(attrs["label"]), html.EscapeString(xlabel))

			delete(attrs, "xlabel")
			delete(attrs, "label")
		}

		desc.Nodes = append(desc.Nodes, node{ID: id, Attributes: attrs, HTMLAttributes: htmlAttributes})

		targets := make([]string, 0, len(adjacencyMap[id]))
		for target := range adjacencyMap[id] {
			targets = append(targets, target)
		}

		sort.Slice(targets, func(i, j int) bool {
			return position[targets[i]] < position[targets[j]]
		})

		for _, target := range targets {
			desc.Edges = append(desc.Edges, edge{
				Source:     id,
				Target:     target,
				Attributes: adjacencyMap[id][target].Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Funcs(template.FuncMap{"esc": escape}).Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
