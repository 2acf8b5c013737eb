// Package matcher decides which columns hold binary UUIDs.
package matcher

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/rebelice/uuidview/internal/models"
)

// ErrInvalidPattern is returned when a rule does not compile
var ErrInvalidPattern = errors.New("uuidview: invalid pattern")

// Rules holds the eligibility patterns. All four must match for a column to qualify.
type Rules struct {
	TableNames  string `mapstructure:"table_names"`
	ColumnNames string `mapstructure:"column_names"`
	ColumnTypes string `mapstructure:"column_types"`
	Comments    string `mapstructure:"comments"`
}

// DefaultRules matches every table, column and comment, and only 16-byte fixed binary types
func DefaultRules() Rules {
	return Rules{
		TableNames:  `.*`,
		ColumnNames: `.*`,
		ColumnTypes: `(?i)^binary\(16\)$`,
		Comments:    `.*`,
	}
}

// Matcher evaluates compiled Rules
type Matcher struct {
	tableNames  *regexp.Regexp
	columnNames *regexp.Regexp
	columnTypes *regexp.Regexp
	comments    *regexp.Regexp
}

// New compiles rules. Empty patterns fall back to the defaults.
func New(rules Rules) (*Matcher, error) {
	defaults := DefaultRules()
	m := &Matcher{}

	compiled := []struct {
		name     string
		pattern  string
		fallback string
		dst      **regexp.Regexp
	}{
		{"table_names", rules.TableNames, defaults.TableNames, &m.tableNames},
		{"column_names", rules.ColumnNames, defaults.ColumnNames, &m.columnNames},
		{"column_types", rules.ColumnTypes, defaults.ColumnTypes, &m.columnTypes},
		{"comments", rules.Comments, defaults.Comments, &m.comments},
	}

	for _, c := range compiled {
		pattern := c.pattern
		if pattern == "" {
			pattern = c.fallback
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w in applicable_to.%s: %v", ErrInvalidPattern, c.name, err)
		}
		*c.dst = re
	}

	return m, nil
}

// IsSuitable reports whether field of table should be transcoded
func (m *Matcher) IsSuitable(table string, field models.Field) bool {
	return m.tableNames.MatchString(table) &&
		m.columnNames.MatchString(field.Name) &&
		m.columnTypes.MatchString(field.FullType) &&
		m.comments.MatchString(field.Comment)
}

// SuitableColumns returns the set of suitable column names
func (m *Matcher) SuitableColumns(table string, fields []models.Field) map[string]bool {
	columns := make(map[string]bool)
	for _, f := range fields {
		if m.IsSuitable(table, f) {
			columns[f.Name] = true
		}
	}
	return columns
}
