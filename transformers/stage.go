package transformers

import (
	"errors"
	"fmt"

	"github.com/Septimmius/ml-templates/gologger"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-playground/validator/v10"
)

type (
	// Stage is the fit/transform capability set shared by every transformer.
	// Fit learns nothing and returns the receiver. Transform returns a new
	// table and never writes the one it was given.
	Stage interface {
		Fit(df dataframe.DataFrame) (Stage, error)
		Transform(df dataframe.DataFrame) (dataframe.DataFrame, error)
	}
)

var (
	logger = gologger.NewLogger()

	validate = validator.New()

	ErrInvalidConfig     = utils.PermError("invalid stage config")
	ErrInvalidStrategy   = utils.PermError("invalid strategy")
	ErrMissingFillValue  = utils.PermError("fill_value must not be nil when strategy is constant")
	ErrInvalidFillValue  = utils.PermError("fill_value is not usable for a numeric column")
	ErrNonNumericColumn  = utils.PermError("column is not numeric")
	ErrLabelsMismatch    = utils.PermError("length of labels must equal n_bins")
	ErrBinEdgesCollapsed = utils.PermError("bin edges collapsed, labels no longer match the bins")
	ErrNoValues          = utils.PermError("column has no non-missing values")
)

// FitTransform fits stage on df and transforms df with it.
func FitTransform(stage Stage, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if ft, ok := stage.(interface {
		FitTransform(dataframe.DataFrame) (dataframe.DataFrame, error)
	}); ok {
		return ft.FitTransform(df)
	}
	fitted, err := stage.Fit(df)
	if err != nil {
		return df, fmt.Errorf("error in Fit: %w", err)
	}
	return fitted.Transform(df)
}

// validateStage runs the struct tags and maps the first failure onto the
// package's sentinel errors.
func validateStage(stage any) error {
	err := validate.Struct(stage)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("error in validate.Struct: %w", err)
	}
	fe := verrs[0]
	if fe.Tag() == "oneof" {
		return fmt.Errorf("%w %v", ErrInvalidStrategy, fe.Value())
	}
	return fmt.Errorf("%w: %s failed on '%s'", ErrInvalidConfig, fe.Field(), fe.Tag())
}
