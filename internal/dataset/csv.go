package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads a dataset from a comma-separated file. The first record is
// the header row.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Load() (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset '%s': %w", s.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from '%s': %w", s.Path, err)
	}

	table := &Table{Columns: append([]string(nil), header...)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d from '%s': %w", table.Len()+1, s.Path, err)
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = coerceCell(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// coerceCell converts numeric-looking strings to float64 so aggregation can
// sum amounts. Everything else (dates, ids with letters) stays a string.
func coerceCell(s string) interface{} {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
