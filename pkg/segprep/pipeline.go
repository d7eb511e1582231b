package segprep

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Transform is one augmentation step over a co-registered sample. Steps never
// modify their input sample.
type Transform interface {
	Apply(rng Rand, s Sample) (Sample, error)
}

// Pipeline applies transforms in order.
type Pipeline struct {
	steps  []Transform
	logger *log.Logger
}

// NewPipeline builds a pipeline. A nil logger discards output.
func NewPipeline(logger *log.Logger, steps ...Transform) *Pipeline {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Pipeline{steps: steps, logger: logger}
}

func (p *Pipeline) Len() int { return len(p.steps) }

// Apply runs every step, stopping at the first failure.
func (p *Pipeline) Apply(rng Rand, s Sample) (Sample, error) {
	for i, step := range p.steps {
		out, err := step.Apply(rng, s)
		if err != nil {
			return Sample{}, fmt.Errorf("step %d (%T): %w", i, step, err)
		}
		s = out
		if s.Aux != nil {
			p.logger.Debug("applied", "step", i, "transform", fmt.Sprintf("%T", step), "image", s.Image, "aux", *s.Aux)
		} else {
			p.logger.Debug("applied", "step", i, "transform", fmt.Sprintf("%T", step), "image", s.Image)
		}
	}
	return s, nil
}
