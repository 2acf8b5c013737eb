// Package host is the reference admin host: it introspects tables, renders the
// search form, turns submitted conditions into a query and displays result rows.
// The three display/search steps are exposed as Hooks so a plugin can wrap them.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rebelice/uuidview/internal/filter"
	"github.com/rebelice/uuidview/internal/models"
	"github.com/rebelice/uuidview/internal/theme"
)

// Request is the per-request state the hooks operate on.
// Where is owned by the request; hooks must not share it across requests.
type Request struct {
	Table string
	Where []models.FilterCondition
}

// Query is the outcome of processing a submitted search form
type Query struct {
	SQL   string
	Args  []interface{}
	Where []models.FilterCondition
}

// Hooks are the extension points invoked during a browse request
type Hooks interface {
	SelectSearchPrint(ctx context.Context, req Request, w io.Writer) error
	SelectSearchProcess(ctx context.Context, req Request, fields []models.Field) (Query, error)
	RowDescriptions(ctx context.Context, req Request, rows []models.Row) ([]models.Row, error)
}

// Host is a Hooks implementation that can also describe table columns
type Host interface {
	Hooks
	Fields(ctx context.Context, table string) ([]models.Field, error)
}

// Catalog is the storage backend a host reads from
type Catalog interface {
	Fields(ctx context.Context, table string) ([]models.Field, error)
	Select(ctx context.Context, sql string, args ...interface{}) (*models.ResultSet, error)
}

// ErrNoTable is returned when a browse request does not name a table
var ErrNoTable = errors.New("no table selected")

// Admin is the default host implementation
type Admin struct {
	catalog  Catalog
	builder  *filter.Builder
	theme    theme.Theme
	nullText string
	maxCell  int
}

// Option configures an Admin
type Option func(*Admin)

// WithTheme sets the render theme
func WithTheme(t theme.Theme) Option {
	return func(a *Admin) { a.theme = t }
}

// WithNullText sets the text displayed for NULL values
func WithNullText(s string) Option {
	return func(a *Admin) { a.nullText = s }
}

// WithMaxCellLength truncates displayed cells longer than n runes. Zero disables truncation.
func WithMaxCellLength(n int) Option {
	return func(a *Admin) { a.maxCell = n }
}

// NewAdmin creates a host backed by catalog
func NewAdmin(catalog Catalog, builder *filter.Builder, opts ...Option) *Admin {
	a := &Admin{
		catalog:  catalog,
		builder:  builder,
		theme:    theme.DefaultTheme(),
		nullText: "NULL",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fields returns column metadata for table
func (a *Admin) Fields(ctx context.Context, table string) ([]models.Field, error) {
	fields, err := a.catalog.Fields(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get fields of %s: %w", table, err)
	}
	return fields, nil
}

// SelectSearchPrint renders the search form for the request's conditions
func (a *Admin) SelectSearchPrint(ctx context.Context, req Request, w io.Writer) error {
	_, err := io.WriteString(w, a.renderSearchForm(req, w))
	return err
}

// SelectSearchProcess builds the query for the submitted conditions
func (a *Admin) SelectSearchProcess(ctx context.Context, req Request, fields []models.Field) (Query, error) {
	sql, args, err := a.builder.BuildSelect(req.Table, fields, req.Where)
	if err != nil {
		return Query{}, fmt.Errorf("failed to build query: %w", err)
	}
	return Query{SQL: sql, Args: args, Where: req.Where}, nil
}

// RowDescriptions returns rows as they are
func (a *Admin) RowDescriptions(ctx context.Context, req Request, rows []models.Row) ([]models.Row, error) {
	return rows, nil
}

// Browse runs one request through hooks: render the form, process it, query and describe rows.
// Pass the Admin itself as hooks for the undecorated behaviour.
func (a *Admin) Browse(ctx context.Context, hooks Hooks, req Request, w io.Writer) (*models.ResultSet, error) {
	if req.Table == "" {
		return nil, ErrNoTable
	}

	fields, err := a.Fields(ctx, req.Table)
	if err != nil {
		return nil, err
	}

	if err := hooks.SelectSearchPrint(ctx, req, w); err != nil {
		return nil, fmt.Errorf("failed to render search form: %w", err)
	}

	query, err := hooks.SelectSearchProcess(ctx, req, fields)
	if err != nil {
		return nil, err
	}

	result, err := a.catalog.Select(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", req.Table, err)
	}

	rows, err := hooks.RowDescriptions(ctx, req, result.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to describe rows: %w", err)
	}
	result.Rows = rows

	return result, nil
}
