package filter

import (
	"encoding/hex"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/rebelice/uuidview/internal/models"
)

// Dialect captures the SQL differences between supported databases
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// HexDecode wraps a placeholder so the database turns a hex literal into bytes
	HexDecode string
}

var (
	SQLite   = Dialect{Name: models.DriverSQLite, Placeholder: sq.Question, HexDecode: "unhex(?)"}
	Postgres = Dialect{Name: models.DriverPostgres, Placeholder: sq.Dollar, HexDecode: "decode(?, 'hex')"}
)

// Builder generates SELECT statements from filter conditions
type Builder struct {
	dialect Dialect
	limit   uint64
}

// NewBuilder creates a new filter builder
func NewBuilder(dialect Dialect, limit uint64) *Builder {
	return &Builder{dialect: dialect, limit: limit}
}

// Dialect returns the builder's dialect
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// BuildSelect generates a SELECT for table filtered by conditions.
// Conditions with an empty column are incomplete form rows and are skipped.
func (b *Builder) BuildSelect(table string, fields []models.Field, conditions []models.FilterCondition) (string, []interface{}, error) {
	byName := make(map[string]models.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	query := sq.Select("*").From(QuoteIdent(table)).PlaceholderFormat(b.dialect.Placeholder)

	for _, cond := range conditions {
		if cond.Column == "" {
			continue
		}
		field, ok := byName[cond.Column]
		if !ok {
			return "", nil, fmt.Errorf("unknown column %q", cond.Column)
		}

		pred, err := b.buildCondition(field, cond)
		if err != nil {
			return "", nil, err
		}
		query = query.Where(pred)
	}

	if b.limit > 0 {
		query = query.Limit(b.limit)
	}

	return query.ToSql()
}

// buildCondition builds a single filter condition
func (b *Builder) buildCondition(field models.Field, cond models.FilterCondition) (sq.Sqlizer, error) {
	column := QuoteIdent(field.Name)

	switch cond.Operator {
	case models.OpIsNull, models.OpIsNotNull:
		return sq.Expr(fmt.Sprintf("%s %s", column, cond.Operator)), nil
	case models.OpEqual, models.OpNotEqual, models.OpGreaterThan, models.OpGreaterOrEqual,
		models.OpLessThan, models.OpLessOrEqual:
		if field.IsBinary() && isHexLiteral(cond.Value) {
			return sq.Expr(fmt.Sprintf("%s %s %s", column, cond.Operator, b.dialect.HexDecode), cond.Value), nil
		}
		return sq.Expr(fmt.Sprintf("%s %s ?", column, cond.Operator), cond.Value), nil
	case models.OpLike:
		return sq.Expr(fmt.Sprintf("%s LIKE ?", column), cond.Value), nil
	default:
		return nil, fmt.Errorf("unsupported operator: %s", cond.Operator)
	}
}

// isHexLiteral reports whether s is a non-empty, even-length hex string
func isHexLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// QuoteIdent quotes an identifier with double quotes, escaping embedded quotes
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
