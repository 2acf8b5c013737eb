// Package sqlite serves SQLite tables to the admin host.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rebelice/uuidview/internal/filter"
	"github.com/rebelice/uuidview/internal/models"
)

// Catalog reads table metadata and rows from a SQLite database
type Catalog struct {
	db *sql.DB
}

// Open opens the database file at path
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &Catalog{db: db}, nil
}

// DB exposes the underlying handle
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// Close closes the database
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Fields returns the columns of table. SQLite keeps the declared type
// verbatim and has no column comments.
func (c *Catalog) Fields(ctx context.Context, table string) ([]models.Field, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", filter.QuoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fields []models.Field
	for rows.Next() {
		var (
			cid       int
			name      string
			declType  string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		fields = append(fields, models.Field{Name: name, FullType: declType})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return fields, nil
}

// Tables lists user tables
func (c *Catalog) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Select runs a query and returns rows with their column order
func (c *Catalog) Select(ctx context.Context, query string, args ...interface{}) (*models.ResultSet, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &models.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
