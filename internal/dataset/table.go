// Package dataset loads tabular transaction data into a column-ordered table
// of generic rows.
package dataset

// Row maps a column name to a scalar cell value.
type Row map[string]interface{}

// Table is an ordered sequence of rows with a column set fixed at load time.
// Rows are never reordered; the row index is the stable record identifier.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column name unless it is already present, so derived
// columns can be re-applied without duplicating the header.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Source loads a dataset from a backing store (file or database).
type Source interface {
	Load() (*Table, error)
}
