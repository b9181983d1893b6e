package numcat

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/Septimmius/ml-templates/datastore"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/rs/zerolog"
)

var (
	ErrBadPartitionFile = utils.PermError("malformed feature name file")
)

// SaveNumCatToCSV writes each list to its own file as an index-prefixed
// single column, header ",0". The two writes are independent: a failure on
// the second leaves the first in place.
func SaveNumCatToCSV(ctx context.Context, store datastore.DataStore, num, cat []string, csvPathNum, csvPathCat string, verbose bool) error {
	if err := writeNames(ctx, store, csvPathNum, num); err != nil {
		return fmt.Errorf("error saving numeric names: %w", err)
	}
	if err := writeNames(ctx, store, csvPathCat, cat); err != nil {
		return fmt.Errorf("error saving categorical names: %w", err)
	}
	if verbose {
		zerolog.Ctx(ctx).Info().Str("numPath", csvPathNum).Str("catPath", csvPathCat).Msg("saved num and cat columns")
	}
	return nil
}

// LoadNumCatCSVToList reads back what SaveNumCatToCSV wrote. Names are kept
// as text, so "1" or "NA" come back exactly as they went in.
func LoadNumCatCSVToList(ctx context.Context, store datastore.DataStore, csvPathNum, csvPathCat string) (num []string, cat []string, err error) {
	num, err = readNames(ctx, store, csvPathNum)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading numeric names: %w", err)
	}
	cat, err = readNames(ctx, store, csvPathCat)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading categorical names: %w", err)
	}
	return num, cat, nil
}

func writeNames(ctx context.Context, store datastore.DataStore, path string, names []string) error {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"", "0"}); err != nil {
		return fmt.Errorf("error in csv.Write: %w", err)
	}
	for i, name := range names {
		if err := w.Write([]string{strconv.Itoa(i), name}); err != nil {
			return fmt.Errorf("error in csv.Write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error in csv.Flush: %w", err)
	}
	return store.WriteFile(ctx, path, &b)
}

func readNames(ctx context.Context, store datastore.DataStore, path string) ([]string, error) {
	raw, err := store.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error in csv.ReadAll for %s: %w", path, err)
	}

	names := []string{}
	// first record is the header
	for i := 1; i < len(records); i++ {
		if len(records[i]) != 2 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields", ErrBadPartitionFile, path, i+1, len(records[i]))
		}
		names = append(names, records[i][1])
	}
	return names, nil
}
