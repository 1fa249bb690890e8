package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads a dataset from an Excel workbook. The first row of the
// sheet is the header; Sheet defaults to the workbook's first sheet.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s *XLSXSource) Load() (*Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook '%s': %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s' from '%s': %w", sheet, s.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' in '%s' has no header row", sheet, s.Path)
	}

	header := rows[0]
	table := &Table{Columns: append([]string(nil), header...)}
	for _, record := range rows[1:] {
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
