package transformers

import (
	"fmt"
	"math"
	"sort"

	"github.com/Septimmius/ml-templates/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
)

const (
	StrategyQuantile = "quantile"
	StrategyUniform  = "uniform"
)

// KBinDiscretize replaces a numeric column with the label of the bin each
// value falls in. Edges come from the data at transform time.
type KBinDiscretize struct {
	Column   string   `validate:"required"`
	NBins    int      `validate:"min=1"`
	Labels   []string `validate:"required"`
	Strategy string
}

func NewKBinDiscretize(column string, nBins int, labels []string, strategy string) (*KBinDiscretize, error) {
	if strategy == "" {
		strategy = StrategyQuantile
	}
	k := &KBinDiscretize{
		Column:   column,
		NBins:    nBins,
		Labels:   labels,
		Strategy: strategy,
	}
	if err := validateStage(k); err != nil {
		return nil, err
	}
	if len(labels) != nBins {
		return nil, fmt.Errorf("%w: %d labels for %d bins", ErrLabelsMismatch, len(labels), nBins)
	}
	return k, nil
}

func (k *KBinDiscretize) Fit(_ dataframe.DataFrame) (Stage, error) {
	return k, nil
}

func (k *KBinDiscretize) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, err := table.Clone(df)
	if err != nil {
		return df, err
	}
	s, err := table.Column(out, k.Column)
	if err != nil {
		return df, err
	}
	if table.KindOf(s.Type()) != table.KindNumeric {
		return df, fmt.Errorf("%w: cannot discretize %q of type %s", ErrNonNumericColumn, k.Column, s.Type())
	}

	var edgeFunc func(sorted []float64, n int) []float64
	switch k.Strategy {
	case StrategyQuantile:
		edgeFunc = quantileEdges
	case StrategyUniform:
		edgeFunc = uniformEdges
	default:
		// TODO: reject unknown strategies in NewKBinDiscretize once callers stop relying on the pass-through
		logger.Warn().Str("column", k.Column).Str("strategy", k.Strategy).Msg("unsupported binning strategy, column left unchanged")
		return out, nil
	}

	vals := table.Floats(s)
	sorted := sortedCopy(table.Present(vals))
	if len(sorted) == 0 {
		return df, fmt.Errorf("%w: %q", ErrNoValues, k.Column)
	}

	edges := dedupeSorted(edgeFunc(sorted, k.NBins))
	if len(edges)-1 != len(k.Labels) {
		return df, fmt.Errorf("%w: %q has %d distinct bins for %d labels", ErrBinEdgesCollapsed, k.Column, len(edges)-1, len(k.Labels))
	}

	recs := make([]string, len(vals))
	for i, v := range vals {
		recs[i] = assignBin(v, edges, k.Labels)
	}
	out, err = table.Replace(out, series.New(recs, series.String, k.Column))
	if err != nil {
		return df, err
	}
	logger.Debug().Str("column", k.Column).Floats64("edges", edges).Msg("discretized column")
	return out, nil
}

// assignBin uses right-closed bins, with the lowest edge included in the
// first bin. NaN stays missing.
func assignBin(v float64, edges []float64, labels []string) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	j := sort.SearchFloat64s(edges, v)
	bin := j - 1
	if bin < 0 {
		bin = 0
	}
	if bin >= len(labels) {
		bin = len(labels) - 1
	}
	return labels[bin]
}

func quantileEdges(sorted []float64, n int) []float64 {
	edges := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		edges[i] = quantile(sorted, float64(i)/float64(n))
	}
	return edges
}

func uniformEdges(sorted []float64, n int) []float64 {
	lo, hi := floats.Min(sorted), floats.Max(sorted)
	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)
	return edges
}
