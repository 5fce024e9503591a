package convert

import (
	"time"

	"bilimux/internal/discovery"
)

// Status is the result of a step or an item.
type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Step kinds.
const (
	StepMux   = "mux"
	StepAudio = "audio"
)

// Step records one output produced (or not) for an item.
type Step struct {
	Kind   string
	Output string
	Status Status
	Size   int64
	Err    error
}

// Outcome is the per-item result of Converter.Convert.
type Outcome struct {
	Item    discovery.WorkItem
	Status  Status
	Steps   []Step
	Err     error
	Elapsed time.Duration
}

// finish derives the item status from its steps: any failure fails the
// item, otherwise any converted output makes it converted.
func (o *Outcome) finish() {
	o.Status = StatusSkipped
	o.Err = nil
	for _, step := range o.Steps {
		switch step.Status {
		case StatusFailed:
			if o.Status != StatusFailed {
				o.Status = StatusFailed
				o.Err = step.Err
			}
		case StatusConverted:
			if o.Status == StatusSkipped {
				o.Status = StatusConverted
			}
		}
	}
	if o.Status == StatusSkipped {
		for _, step := range o.Steps {
			if step.Err != nil {
				o.Err = step.Err
				break
			}
		}
	}
}

// Outputs returns the files written for the item.
func (o Outcome) Outputs() []string {
	var out []string
	for _, step := range o.Steps {
		if step.Status == StatusConverted {
			out = append(out, step.Output)
		}
	}
	return out
}

// Summary aggregates a run.
type Summary struct {
	Converted int
	Failed    int
	Skipped   int
	Warnings  int
	Items     []Outcome
	Elapsed   time.Duration
}

// OK reports whether no item failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

func (s *Summary) add(outcome Outcome) {
	s.Items = append(s.Items, outcome)
	switch outcome.Status {
	case StatusConverted:
		s.Converted++
	case StatusFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}
