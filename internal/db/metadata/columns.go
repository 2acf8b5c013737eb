package metadata

import (
	"context"
	"fmt"

	"github.com/rebelice/uuidview/internal/db/connection"
	"github.com/rebelice/uuidview/internal/models"
)

// GetTableFields retrieves name, full declared type and comment of each column of a table
func GetTableFields(ctx context.Context, pool *connection.Pool, schema, table string) ([]models.Field, error) {
	query := `
		SELECT
			a.attname AS column_name,
			pg_catalog.format_type(a.atttypid, a.atttypmod) AS full_type,
			COALESCE(pg_catalog.col_description(a.attrelid, a.attnum), '') AS comment
		FROM pg_catalog.pg_attribute a
		JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2
			AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum
	`

	rows, err := pool.Query(ctx, query, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	fields := make([]models.Field, 0, len(rows))
	for _, row := range rows {
		fields = append(fields, models.Field{
			Name:     toString(row["column_name"]),
			FullType: toString(row["full_type"]),
			Comment:  toString(row["comment"]),
		})
	}

	return fields, nil
}
