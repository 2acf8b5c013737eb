package metadata

import (
	"context"
	"fmt"

	"github.com/rebelice/uuidview/internal/db/connection"
)

// toString safely converts an interface{} to string
func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ListTables returns the names of all tables in a schema
func ListTables(ctx context.Context, pool *connection.Pool, schema string) ([]string, error) {
	query := `
		SELECT tablename AS name
		FROM pg_catalog.pg_tables
		WHERE schemaname = $1
		ORDER BY tablename;
	`

	rows, err := pool.Query(ctx, query, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, toString(row["name"]))
	}

	return tables, nil
}
