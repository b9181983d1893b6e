package tableio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/Septimmius/ml-templates/parquet_accumulator"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

var (
	ErrNestedParquet = errors.New("only flat parquet files can be read as a table")
)

// WriteParquet writes df as a single parquet file, missing cells as nulls.
func WriteParquet(w io.Writer, df dataframe.DataFrame) error {
	accumulator := parquet_accumulator.NewParquetAccumulator()
	accumulator.WriteTable(df)
	parquetSchema, err := accumulator.GetSchemaString()
	if err != nil {
		return fmt.Errorf("error in GetSchemaString: %w", err)
	}
	logger.Debug().Strs("columns", accumulator.GetColumnNames()).Strs("types", accumulator.GetColumnTypes()).Msg("writing parquet")

	pw, err := writer.NewJSONWriterFromWriter(parquetSchema, w, 4)
	if err != nil {
		return fmt.Errorf("error in NewJSONWriterFromWriter: %w", err)
	}

	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = df.Col(name)
	}

	for r := 0; r < df.Nrow(); r++ {
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v, err := cellValue(col.Elem(r))
			if err != nil {
				return fmt.Errorf("error reading %q row %d: %w", names[i], r, err)
			}
			if v != nil {
				row[names[i]] = v
			}
		}
		rowBytes, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("error in json.Marshal of row: %w", err)
		}
		err = pw.Write(string(rowBytes))
		if err != nil {
			return fmt.Errorf("error in pw.Write for row %+v: %w", string(rowBytes), err)
		}
	}
	err = pw.WriteStop()
	if err != nil {
		return fmt.Errorf("error in pw.WriteStop: %w", err)
	}
	return nil
}

func cellValue(e series.Element) (any, error) {
	if e.IsNA() {
		return nil, nil
	}
	switch e.Type() {
	case series.Int:
		return e.Int()
	case series.Bool:
		return e.Bool()
	case series.Float:
		return e.Float(), nil
	default:
		return e.String(), nil
	}
}

// ReadParquet loads a flat parquet file. Column types follow the parquet
// physical types.
func ReadParquet(path string) (dataframe.DataFrame, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error in NewLocalFileReader: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, 4)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error creating parquet reader for %s: %w", path, err)
	}
	defer pr.ReadStop()

	// first element is the root. Footer names are the capitalized internal
	// ones, the names the file was written with are in the schema handler.
	elements := pr.Footer.Schema[1:]
	infos := pr.SchemaHandler.Infos[1:]
	names := make([]string, len(elements))
	types := make(map[string]series.Type, len(elements))
	for i, el := range elements {
		if el.GetNumChildren() > 0 {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %q is a group", ErrNestedParquet, infos[i].ExName)
		}
		names[i] = infos[i].ExName
		types[names[i]] = seriesType(el.GetType())
	}

	num := int(pr.GetNumRows())
	if num == 0 {
		return dataframe.DataFrame{}, ErrEmptyTable
	}
	res, err := pr.ReadByNumber(num)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error reading rows for %s: %w", path, err)
	}

	// Struct -> Map, fields come in schema order
	rows := make([]map[string]any, 0, len(res))
	for _, item := range res {
		v := reflect.ValueOf(item)
		if v.NumField() != len(names) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %d fields for %d columns", ErrNestedParquet, v.NumField(), len(names))
		}
		rowMap := make(map[string]any, len(names))
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.Kind() == reflect.Ptr {
				if f.IsNil() {
					rowMap[names[i]] = nil
					continue
				}
				f = f.Elem()
			}
			rowMap[names[i]] = f.Interface()
		}
		rows = append(rows, rowMap)
	}

	df := dataframe.LoadMaps(rows, dataframe.WithTypes(types))
	if df.Err != nil {
		return df, fmt.Errorf("error in dataframe.LoadMaps: %w", df.Err)
	}
	// LoadMaps sorts the columns, put them back in file order
	df = df.Select(names)
	if df.Err != nil {
		return df, fmt.Errorf("error in df.Select: %w", df.Err)
	}
	logger.Debug().Str("path", path).Int("rows", num).Msg("read parquet file")
	return df, nil
}

func seriesType(t parquet.Type) series.Type {
	switch t {
	case parquet.Type_BYTE_ARRAY, parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return series.String
	case parquet.Type_INT32, parquet.Type_INT64:
		return series.Int
	case parquet.Type_BOOLEAN:
		return series.Bool
	default:
		return series.Float
	}
}
