package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Septimmius/ml-templates/transformers"
	"gopkg.in/yaml.v3"
)

type (
	// Plan is the declarative form of a pipeline, as found in a YAML file.
	Plan struct {
		Stages []StagePlan `yaml:"stages"`
	}

	StagePlan struct {
		Stage     string   `yaml:"stage"`
		Columns   []string `yaml:"columns"`
		Strategy  string   `yaml:"strategy"`
		FillValue any      `yaml:"fill_value"`
		Threshold float64  `yaml:"threshold"`
		NBins     int      `yaml:"n_bins"`
		Labels    []string `yaml:"labels"`
	}

	StageFunc func(plan StagePlan) (transformers.Stage, error)
)

var (
	Stages = make(map[string]StageFunc)

	ErrStageNotFound  = errors.New("stage not found")
	ErrSingleColumn   = errors.New("kbin_discretize takes exactly one column")
	ErrNoStages       = errors.New("plan has no stages")
	registerStageOnce sync.Once
)

func RegisterStages() {
	registerStageOnce.Do(func() {
		Stages["delete_feature"] = func(plan StagePlan) (transformers.Stage, error) {
			return transformers.NewDeleteFeature(plan.Columns), nil
		}
		Stages["imputer"] = func(plan StagePlan) (transformers.Stage, error) {
			return transformers.NewImputer(plan.Columns, plan.Strategy, plan.FillValue)
		}
		Stages["binarize"] = func(plan StagePlan) (transformers.Stage, error) {
			return transformers.NewBinarize(plan.Threshold, plan.Columns...)
		}
		Stages["kbin_discretize"] = func(plan StagePlan) (transformers.Stage, error) {
			if len(plan.Columns) != 1 {
				return nil, fmt.Errorf("%w, got %d", ErrSingleColumn, len(plan.Columns))
			}
			return transformers.NewKBinDiscretize(plan.Columns[0], plan.NBins, plan.Labels, plan.Strategy)
		}
	})
}

func ParsePlan(r io.Reader) (Plan, error) {
	var plan Plan
	if err := yaml.NewDecoder(r).Decode(&plan); err != nil {
		return plan, fmt.Errorf("error in yaml Decode: %w", err)
	}
	return plan, nil
}

// Build turns a plan into a pipeline, validating every stage on the way.
func Build(plan Plan) (*transformers.Pipeline, error) {
	RegisterStages()
	if len(plan.Stages) == 0 {
		return nil, ErrNoStages
	}

	var steps []transformers.Stage
	for i, sp := range plan.Stages {
		f, ok := Stages[sp.Stage]
		if !ok {
			return nil, fmt.Errorf("%w: %q at index %d", ErrStageNotFound, sp.Stage, i)
		}
		stage, err := f(sp)
		if err != nil {
			return nil, fmt.Errorf("error building stage %s at index %d: %w", sp.Stage, i, err)
		}
		steps = append(steps, stage)
	}
	return transformers.NewPipeline(steps...), nil
}
