package table

import (
	"fmt"
	"math"

	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type (
	// Kind is the scalar family a column belongs to
	Kind int
)

const (
	KindOther Kind = iota
	KindNumeric
	KindText
)

var (
	ErrColumnNotFound = utils.PermError("column not found")
	ErrBadTable       = utils.PermError("table carries an error")
)

// KindOf maps a gota series type onto the numeric/text split. Bool and
// anything gota adds later are KindOther.
func KindOf(t series.Type) Kind {
	switch t {
	case series.Int, series.Float:
		return KindNumeric
	case series.String:
		return KindText
	default:
		return KindOther
	}
}

// Clone returns a deep copy of df. Stages call this before touching a table
// so the caller's table is never written.
func Clone(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("%w: %s", ErrBadTable, df.Err.Error())
	}
	return df.Copy(), nil
}

// RequireColumns fails on the first name that is not a column of df.
func RequireColumns(df dataframe.DataFrame, cols ...string) error {
	names := df.Names()
	for _, col := range cols {
		if !utils.ContainsString(names, col) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, col)
		}
	}
	return nil
}

// Column returns the named column or ErrColumnNotFound.
func Column(df dataframe.DataFrame, col string) (series.Series, error) {
	if err := RequireColumns(df, col); err != nil {
		return series.Series{}, err
	}
	s := df.Col(col)
	if s.Err != nil {
		return s, fmt.Errorf("error in df.Col(%q): %w", col, s.Err)
	}
	return s, nil
}

// Floats returns the column as float64 values with NaN at missing positions.
func Floats(s series.Series) []float64 {
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			out[i] = math.NaN()
			continue
		}
		out[i] = e.Float()
	}
	return out
}

// Present drops NaN values.
func Present(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// HasMissing reports whether any element of s is missing.
func HasMissing(s series.Series) bool {
	for _, na := range s.IsNaN() {
		if na {
			return true
		}
	}
	return false
}

// Replace swaps the column named s.Name for s.
func Replace(df dataframe.DataFrame, s series.Series) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return df, fmt.Errorf("error in df.Mutate(%q): %w", s.Name, out.Err)
	}
	return out, nil
}
