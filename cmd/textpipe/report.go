package main

import (
	"github.com/askiada/go-textpipe/pkg/pipeline"
	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
	"github.com/askiada/go-textpipe/pkg/pipeline/model"
)

type snapshotReport struct {
	Step  string `yaml:"step"`
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

type report struct {
	Source    string            `yaml:"source"`
	RunID     string            `yaml:"run_id"`
	Steps     []string          `yaml:"steps"`
	Skipped   []string          `yaml:"skipped,omitempty"`
	Output    any               `yaml:"output,omitempty"`
	Snapshots []snapshotReport  `yaml:"snapshots"`
	Durations map[string]string `yaml:"durations,omitempty"`
	Error     string            `yaml:"error,omitempty"`
}

func newReport(source string, pipe *pipeline.Pipeline, msr measure.Measure, runErr error) report {
	rep := report{
		Source:    source,
		RunID:     pipe.RunID().String(),
		Snapshots: []snapshotReport{},
	}

	for _, step := range pipe.Steps() {
		rep.Steps = append(rep.Steps, string(step))
	}

	for _, warn := range pipe.Warnings() {
		rep.Skipped = append(rep.Skipped, warn.Name)
	}

	if out, ok := pipe.Output(); ok {
		rep.Output = out.Interface()
	}

	for _, snap := range pipe.Snapshots().Entries() {
		rep.Snapshots = append(rep.Snapshots, snapshotReport{
			Step:  string(snap.Step),
			Kind:  snap.Value.Kind().String(),
			Value: snap.Value.Interface(),
		})
	}

	if msr != nil {
		rep.Durations = make(map[string]string)
		for _, name := range pipe.Snapshots().Names() {
			if mt := msr.GetMetric(string(name)); mt != nil {
				rep.Durations[string(name)] = mt.TotalDuration().String()
			}
		}
		if end := msr.GetMetric(model.EndStep.Name); end != nil {
			rep.Durations["total"] = end.EndDuration().String()
		}
	}

	if runErr != nil {
		rep.Error = runErr.Error()
	}

	return rep
}
