package metadata

import (
	"context"

	"github.com/rebelice/uuidview/internal/db/connection"
	"github.com/rebelice/uuidview/internal/models"
)

// Catalog serves one PostgreSQL schema to the admin host
type Catalog struct {
	pool   *connection.Pool
	schema string
}

// NewCatalog creates a catalog for schema, defaulting to "public"
func NewCatalog(pool *connection.Pool, schema string) *Catalog {
	if schema == "" {
		schema = "public"
	}
	return &Catalog{pool: pool, schema: schema}
}

// Fields returns the column metadata of table
func (c *Catalog) Fields(ctx context.Context, table string) ([]models.Field, error) {
	return GetTableFields(ctx, c.pool, c.schema, table)
}

// Tables lists the tables of the catalog's schema
func (c *Catalog) Tables(ctx context.Context) ([]string, error) {
	return ListTables(ctx, c.pool, c.schema)
}

// Select runs a query and returns rows with their column order
func (c *Catalog) Select(ctx context.Context, sql string, args ...interface{}) (*models.ResultSet, error) {
	return c.pool.QueryWithColumns(ctx, sql, args...)
}

// Close releases the underlying pool
func (c *Catalog) Close() error {
	c.pool.Close()
	return nil
}
