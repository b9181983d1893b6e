// Package numcat splits a table's columns into numeric and categorical
// feature name lists for building preprocessing pipelines, optionally
// persisting the split so a later run can reuse it.
package numcat

import (
	"context"
	"fmt"
	"strings"

	"github.com/Septimmius/ml-templates/table"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"
)

var (
	ErrLengthMismatch = utils.PermError("lengths mismatch")
	ErrStrangeColumns = utils.PermError("found columns that are neither numeric nor text, go back and check")
)

// SeparateRawNumCat splits column names by their raw type: text columns are
// categorical, int and float columns numeric. Any other column type fails.
func SeparateRawNumCat(ctx context.Context, df dataframe.DataFrame, verbose bool) (num []string, cat []string, err error) {
	if df.Err != nil {
		return nil, nil, fmt.Errorf("%w: %s", table.ErrBadTable, df.Err.Error())
	}
	num, cat = []string{}, []string{}
	var strange []string

	names, types := df.Names(), df.Types()
	for i, col := range names {
		switch table.KindOf(types[i]) {
		case table.KindText:
			cat = append(cat, col)
		case table.KindNumeric:
			num = append(num, col)
		default:
			strange = append(strange, col)
		}
	}

	if got := len(num) + len(cat) + len(strange); got != len(names) {
		return nil, nil, fmt.Errorf("%w separating raw columns, %d != %d", ErrLengthMismatch, got, len(names))
	}
	if len(strange) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrStrangeColumns, strings.Join(strange, ", "))
	}

	if verbose {
		logNumCat(ctx, "separated raw columns", num, cat)
	}
	return num, cat, nil
}

// AdjustRawNumCatDtypes moves the numToCat columns out of the numeric list and
// onto the end of the categorical one. Column types in df are not touched.
func AdjustRawNumCatDtypes(ctx context.Context, numToCat []string, df dataframe.DataFrame, verbose bool) (num []string, cat []string, err error) {
	num, cat, err = SeparateRawNumCat(ctx, df, false)
	if err != nil {
		return nil, nil, err
	}

	num = RemoveFeaturesIntersection(num, numToCat)
	cat = append(cat, numToCat...)
	if got, want := len(num)+len(cat), df.Ncol(); got != want {
		return nil, nil, fmt.Errorf("%w adjusting raw columns, %d != %d", ErrLengthMismatch, got, want)
	}

	if verbose {
		logNumCat(ctx, "adjusted raw columns", num, cat)
	}
	return num, cat, nil
}

func logNumCat(ctx context.Context, msg string, num, cat []string) {
	zerolog.Ctx(ctx).Info().
		Strs("numCols", num).
		Strs("catCols", cat).
		Int("numCount", len(num)).
		Int("catCount", len(cat)).
		Msg(msg)
}
