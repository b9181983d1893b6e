package transformers

import (
	"fmt"

	"github.com/Septimmius/ml-templates/table"
	"github.com/go-gota/gota/dataframe"
)

type DeleteFeature struct {
	Columns []string
}

func NewDeleteFeature(columns []string) *DeleteFeature {
	return &DeleteFeature{Columns: columns}
}

func (d *DeleteFeature) Fit(_ dataframe.DataFrame) (Stage, error) {
	return d, nil
}

func (d *DeleteFeature) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, err := table.Clone(df)
	if err != nil {
		return df, err
	}
	if len(d.Columns) == 0 {
		return out, nil
	}
	if err := table.RequireColumns(out, d.Columns...); err != nil {
		return df, err
	}

	logger.Debug().Strs("columns", d.Columns).Msg("deleting features")
	out = out.Drop(d.Columns)
	if out.Err != nil {
		return df, fmt.Errorf("error in df.Drop: %w", out.Err)
	}
	return out, nil
}
