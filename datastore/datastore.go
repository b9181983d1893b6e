package datastore

import (
	"context"
	"fmt"
	"io"

	"github.com/Septimmius/ml-templates/gologger"
	"github.com/Septimmius/ml-templates/utils"
)

var (
	logger = gologger.NewLogger()

	ErrUnknownStore = utils.PermError("unknown store")
)

type (
	// DataStore holds the small files a run persists, like the feature name
	// lists of a numeric/categorical partition.
	DataStore interface {
		// WriteFile replaces the file at path with the contents of r
		WriteFile(ctx context.Context, path string, r io.Reader) error
		// ReadFile returns the whole file at path
		ReadFile(ctx context.Context, path string) ([]byte, error)

		Shutdown(ctx context.Context) error
	}
)

// FromEnv builds the store selected by the STORE env var.
func FromEnv() (DataStore, error) {
	switch utils.STORE {
	case "disk":
		return NewDiskDataStore(utils.DATA_DIR)
	case "s3":
		return NewS3DataStore(utils.S3_BUCKET_NAME, utils.S3_PREFIX)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, utils.STORE)
	}
}
