package models

import "strings"

// Field describes one column of the selected table as reported by schema introspection
type Field struct {
	Name     string
	FullType string // declared type including width, e.g. "binary(16)"
	Comment  string
}

// IsBinary reports whether the declared type stores raw bytes
func (f Field) IsBinary() bool {
	t := strings.ToLower(f.FullType)
	return strings.Contains(t, "binary") || strings.Contains(t, "blob") || t == "bytea"
}
