package tableio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/danthegoodman1/gojsonutils"
	"github.com/go-gota/gota/dataframe"
)

var (
	ErrNotFlatMap = errors.New("not a flat map")
	ErrNotObject  = errors.New("line was not a JSON object")
)

// ReadNDJSON reads one JSON object per line. Nested objects are flattened
// into one column per leaf.
func ReadNDJSON(r io.Reader) (dataframe.DataFrame, error) {
	var rows []map[string]any

	ndJSONScanner := bufio.NewScanner(r)
	ndJSONScanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for ndJSONScanner.Scan() {
		line++
		if len(ndJSONScanner.Bytes()) == 0 {
			continue
		}
		var raw any
		err := json.Unmarshal(ndJSONScanner.Bytes(), &raw)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("error in json.Unmarshal on line %d: %w", line, err)
		}
		jsonMap, ok := raw.(map[string]any)
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: line %d", ErrNotObject, line)
		}
		flat, err := gojsonutils.Flatten(jsonMap, nil)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("error flattening line %d: %w", line, err)
		}
		flatMap, ok := flat.(map[string]any)
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: got %+v", ErrNotFlatMap, flat)
		}
		rows = append(rows, flatMap)
	}
	if err := ndJSONScanner.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error scanning ndjson: %w", err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, ErrEmptyTable
	}

	// gota fills absent keys with "", which is a value for text columns
	var keys []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	for _, row := range rows {
		for _, k := range keys {
			if _, ok := row[k]; !ok {
				row[k] = nil
			}
		}
	}

	df := dataframe.LoadMaps(rows)
	if df.Err != nil {
		return df, fmt.Errorf("error in dataframe.LoadMaps: %w", df.Err)
	}
	return df, nil
}
