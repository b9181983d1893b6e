package numcat

import (
	"context"
	"errors"
	"fmt"

	"github.com/Septimmius/ml-templates/datastore"
	"github.com/Septimmius/ml-templates/gologger"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate = validator.New()

	ErrMissingPath = utils.PermError("must provide csv paths for both num and cat when saving and loading")
)

type PrepareOptions struct {
	CSVPathNum string `validate:"required_if=SaveAndLoad true"`
	CSVPathCat string `validate:"required_if=SaveAndLoad true"`
	// SaveAndLoad round-trips the lists through the store before returning
	// them, catching anything the serialization loses.
	SaveAndLoad bool
	// Store defaults to a disk store rooted at DATA_DIR
	Store datastore.DataStore
}

// PrepareNumCatForPipeline separates and adjusts the columns of df, and when
// SaveAndLoad is set, persists the lists and returns what was read back.
func PrepareNumCatForPipeline(ctx context.Context, df dataframe.DataFrame, numToCat []string, opts PrepareOptions) (num []string, cat []string, err error) {
	runID := uuid.NewString()
	logger := gologger.NewRunLogger(runID)
	ctx = logger.WithContext(ctx)

	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingPath, verrs[0].Field())
		}
		return nil, nil, fmt.Errorf("error in validate.Struct: %w", err)
	}

	if !opts.SaveAndLoad {
		return AdjustRawNumCatDtypes(ctx, numToCat, df, true)
	}

	store := opts.Store
	if store == nil {
		store, err = datastore.NewDiskDataStore(utils.DATA_DIR)
		if err != nil {
			return nil, nil, fmt.Errorf("error in NewDiskDataStore: %w", err)
		}
	}

	num, cat, err = AdjustRawNumCatDtypes(ctx, numToCat, df, false)
	if err != nil {
		return nil, nil, err
	}
	err = SaveNumCatToCSV(ctx, store, num, cat, opts.CSVPathNum, opts.CSVPathCat, true)
	if err != nil {
		return nil, nil, err
	}
	numericX, categoricalX, err := LoadNumCatCSVToList(ctx, store, opts.CSVPathNum, opts.CSVPathCat)
	if err != nil {
		return nil, nil, err
	}
	if got, want := len(numericX)+len(categoricalX), df.Ncol(); got != want {
		return nil, nil, fmt.Errorf("%w when read back from the store, %d != %d", ErrLengthMismatch, got, want)
	}
	logger.Debug().Msg("prepared num and cat columns")
	return numericX, categoricalX, nil
}

// RemoveFeaturesIntersection returns features without any of featuresToRemove,
// order preserved.
func RemoveFeaturesIntersection(features, featuresToRemove []string) []string {
	drop := make(map[string]struct{}, len(featuresToRemove))
	for _, f := range featuresToRemove {
		drop[f] = struct{}{}
	}
	out := make([]string, 0, len(features))
	for _, f := range features {
		if _, ok := drop[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// RemoveFeaturesFromNumCat drops toRemove from both lists. Every name in
// toRemove must appear exactly once across the two lists.
func RemoveFeaturesFromNumCat(numericX, categoricalX, toRemove []string) (num []string, cat []string, err error) {
	num = RemoveFeaturesIntersection(numericX, toRemove)
	cat = RemoveFeaturesIntersection(categoricalX, toRemove)
	if got, want := len(num)+len(cat), len(numericX)+len(categoricalX)-len(toRemove); got != want {
		return nil, nil, fmt.Errorf("%w after removing features, %d != %d", ErrLengthMismatch, got, want)
	}
	return num, cat, nil
}
