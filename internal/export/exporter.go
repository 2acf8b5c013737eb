package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Format names an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Write exports rows in the given format
func Write(w io.Writer, format Format, columns []string, rows [][]string) error {
	switch format {
	case FormatCSV:
		return ExportToCSV(w, columns, rows)
	case FormatJSON:
		return ExportToJSON(w, columns, rows)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportToCSV writes a header line followed by one record per row
func ExportToCSV(w io.Writer, columns []string, rows [][]string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportToJSON writes rows as an array of objects keyed by column name.
// Keys are emitted in column order.
func ExportToJSON(w io.Writer, columns []string, rows [][]string) error {
	records := make([]orderedRecord, len(rows))
	for i, row := range rows {
		records[i] = orderedRecord{columns: columns, values: row}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows to JSON: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	return nil
}

type orderedRecord struct {
	columns []string
	values  []string
}

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, col := range r.columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		var value string
		if i < len(r.values) {
			value = r.values[i]
		}
		val, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}
