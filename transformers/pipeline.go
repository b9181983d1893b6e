package transformers

import (
	"fmt"

	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"
)

// Pipeline chains stages. It is itself a Stage, so pipelines nest.
type Pipeline struct {
	ID     string
	steps  []Stage
	logger zerolog.Logger
}

func NewPipeline(steps ...Stage) *Pipeline {
	id := utils.GenKSortedID("pipe_")
	return &Pipeline{
		ID:     id,
		steps:  steps,
		logger: logger.With().Str("pipelineID", id).Logger(),
	}
}

func (p *Pipeline) Steps() []Stage {
	return p.steps
}

// Fit fits each step on the output of the steps before it.
func (p *Pipeline) Fit(df dataframe.DataFrame) (Stage, error) {
	if _, err := p.FitTransform(df); err != nil {
		return p, err
	}
	return p, nil
}

// FitTransform fits every step and returns the table the last step produced,
// running each step's Transform once.
func (p *Pipeline) FitTransform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out := df
	for i, step := range p.steps {
		fitted, err := step.Fit(out)
		if err != nil {
			return df, fmt.Errorf("error fitting step %d (%T): %w", i, step, err)
		}
		p.steps[i] = fitted
		out, err = fitted.Transform(out)
		if err != nil {
			return df, fmt.Errorf("error transforming step %d (%T): %w", i, step, err)
		}
	}
	rows, cols := out.Dims()
	p.logger.Debug().Int("steps", len(p.steps)).Int("rows", rows).Int("cols", cols).Msg("fitted pipeline")
	return out, nil
}

func (p *Pipeline) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out := df
	for i, step := range p.steps {
		var err error
		out, err = step.Transform(out)
		if err != nil {
			return df, fmt.Errorf("error transforming step %d (%T): %w", i, step, err)
		}
	}
	rows, cols := out.Dims()
	p.logger.Debug().Int("rows", rows).Int("cols", cols).Msg("transformed table")
	return out, nil
}
