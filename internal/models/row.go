package models

// Row is a single result row keyed by column name. A nil value is NULL.
type Row map[string]interface{}

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ResultSet holds rows together with their column order
type ResultSet struct {
	Columns []string
	Rows    []Row
}
