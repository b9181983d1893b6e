package transformers

import (
	"fmt"

	"github.com/Septimmius/ml-templates/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Binarize maps values above Threshold to 1 and everything else to 0.
// Missing entries fail the comparison, so they come out as 0.
type Binarize struct {
	Columns   []string `validate:"required,min=1,dive,required"`
	Threshold float64
}

func NewBinarize(threshold float64, columns ...string) (*Binarize, error) {
	b := &Binarize{
		Columns:   columns,
		Threshold: threshold,
	}
	if err := validateStage(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Binarize) Fit(_ dataframe.DataFrame) (Stage, error) {
	return b, nil
}

func (b *Binarize) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, err := table.Clone(df)
	if err != nil {
		return df, err
	}

	for _, col := range b.Columns {
		s, err := table.Column(out, col)
		if err != nil {
			return df, err
		}
		if table.KindOf(s.Type()) != table.KindNumeric {
			return df, fmt.Errorf("%w: cannot binarize %q of type %s", ErrNonNumericColumn, col, s.Type())
		}

		vals := table.Floats(s)
		bins := make([]int, len(vals))
		for i, v := range vals {
			if v > b.Threshold {
				bins[i] = 1
			}
		}
		out, err = table.Replace(out, series.New(bins, series.Int, col))
		if err != nil {
			return df, err
		}
	}
	logger.Debug().Strs("columns", b.Columns).Float64("threshold", b.Threshold).Msg("binarized columns")
	return out, nil
}
