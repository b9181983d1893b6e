package transformers

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/Septimmius/ml-templates/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	StrategyMean         = "mean"
	StrategyMedian       = "median"
	StrategyMostFrequent = "most_frequent"
	StrategyConstant     = "constant"
)

type Imputer struct {
	Columns   []string `validate:"required,min=1,dive,required"`
	Strategy  string   `validate:"oneof=mean median most_frequent constant"`
	FillValue any
}

func NewImputer(columns []string, strategy string, fillValue any) (*Imputer, error) {
	im := &Imputer{
		Columns:   columns,
		Strategy:  strategy,
		FillValue: fillValue,
	}
	if err := validateStage(im); err != nil {
		return nil, err
	}
	if strategy == StrategyConstant && fillValue == nil {
		return nil, ErrMissingFillValue
	}
	return im, nil
}

func (im *Imputer) Fit(_ dataframe.DataFrame) (Stage, error) {
	return im, nil
}

func (im *Imputer) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, err := table.Clone(df)
	if err != nil {
		return df, err
	}
	if err := table.RequireColumns(out, im.Columns...); err != nil {
		return df, err
	}

	for _, col := range im.Columns {
		s := out.Col(col)
		numeric := table.KindOf(s.Type()) == table.KindNumeric
		if !numeric && (im.Strategy == StrategyMean || im.Strategy == StrategyMedian) {
			return df, fmt.Errorf("%w: cannot take the %s of %q", ErrNonNumericColumn, im.Strategy, col)
		}
		if !table.HasMissing(s) {
			continue
		}

		var filled series.Series
		if numeric {
			filled, err = im.imputeNumeric(s)
		} else {
			filled = im.imputeText(s)
		}
		if err != nil {
			return df, fmt.Errorf("error imputing column %q: %w", col, err)
		}
		out, err = table.Replace(out, filled)
		if err != nil {
			return df, err
		}
		logger.Debug().Str("column", col).Str("strategy", im.Strategy).Msg("imputed column")
	}
	return out, nil
}

func (im *Imputer) imputeNumeric(s series.Series) (series.Series, error) {
	vals := table.Floats(s)
	present := table.Present(vals)

	var fill float64
	switch im.Strategy {
	case StrategyMean:
		fill = mean(present)
	case StrategyMedian:
		fill = median(present)
	case StrategyMostFrequent:
		fill = modeFloat(present)
	case StrategyConstant:
		f, err := toFloat(im.FillValue)
		if err != nil {
			return s, err
		}
		fill = f
	}

	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = fill
		}
	}
	return series.New(vals, series.Float, s.Name), nil
}

func (im *Imputer) imputeText(s series.Series) series.Series {
	recs := make([]string, s.Len())
	var present []string
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			recs[i] = "NaN"
			continue
		}
		recs[i] = e.String()
		present = append(present, recs[i])
	}

	fill := "NaN"
	switch im.Strategy {
	case StrategyMostFrequent:
		if m, ok := modeString(present); ok {
			fill = m
		}
	case StrategyConstant:
		fill = fmt.Sprint(im.FillValue)
	}

	for i := 0; i < s.Len(); i++ {
		if s.Elem(i).IsNA() {
			recs[i] = fill
		}
	}
	return series.New(recs, s.Type(), s.Name)
}

// toFloat accepts any numeric kind, named types included, and numeric strings.
func toFloat(v any) (float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFillValue, rv.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidFillValue, v, v)
	}
}
