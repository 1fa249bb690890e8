package dataset

import (
	"database/sql"
	"fmt"
)

// SQLSource reads a dataset from a SQL Server table. OrderBy, when set,
// fixes the row order so record ids stay stable across runs.
type SQLSource struct {
	DB      *sql.DB
	Table   string
	OrderBy string
}

func (s *SQLSource) Load() (*Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", s.Table)
	if s.OrderBy != "" {
		query += fmt.Sprintf(" ORDER BY %s", s.OrderBy)
	}

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: append([]string(nil), cols...)}
	for rows.Next() {
		columns := make([]interface{}, len(cols))
		columnPointers := make([]interface{}, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}
		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, colName := range cols {
			val := columns[i]
			if b, ok := val.([]byte); ok {
				row[colName] = string(b)
			} else {
				row[colName] = val
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
