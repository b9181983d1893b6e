package tableio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Septimmius/ml-templates/gologger"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/go-gota/gota/dataframe"
)

var (
	logger = gologger.NewLogger()

	ErrUnknownFormat = utils.PermError("unknown table format")
	ErrEmptyTable    = utils.PermError("no rows found")
)

// Load reads a table, picking the format from the file extension.
func Load(path string) (dataframe.DataFrame, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".parquet" {
		return ReadParquet(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error in os.Open: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".csv":
		return ReadCSV(f)
	case ".ndjson", ".jsonl":
		return ReadNDJSON(f)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Save writes df to path, picking the format from the file extension.
func Save(path string, df dataframe.DataFrame) error {
	ext := strings.ToLower(filepath.Ext(path))
	var write func(io.Writer, dataframe.DataFrame) error
	switch ext {
	case ".csv":
		write = WriteCSV
	case ".parquet":
		write = WriteParquet
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error in os.Create: %w", err)
	}
	if err := write(f, df); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}
	rows, cols := df.Dims()
	logger.Debug().Str("path", path).Int("rows", rows).Int("cols", cols).Msg("saved table")
	return nil
}

func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return df, fmt.Errorf("error in dataframe.ReadCSV: %w", df.Err)
	}
	return df, nil
}

func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("error in df.WriteCSV: %w", err)
	}
	return nil
}
