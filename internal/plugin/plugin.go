// Package plugin shows binary UUID columns as hyphenated text by wrapping the
// host's search form, search processing and row description hooks.
//
// Each hook derives a rewritten copy of the request state, hands it to the
// host, and never writes to the caller's filter list.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rebelice/uuidview/internal/host"
	"github.com/rebelice/uuidview/internal/matcher"
	"github.com/rebelice/uuidview/internal/models"
	"github.com/rebelice/uuidview/internal/uuidfmt"
)

// ErrNoTableSelected is returned by every hook when the request names no table
var ErrNoTableSelected = errors.New("uuidview: no table selected")

// Options configures a Plugin
type Options struct {
	Lowercase bool          `mapstructure:"convert_to_lowercase"`
	Rules     matcher.Rules `mapstructure:"applicable_to"`
}

// DefaultOptions returns lowercase output and the default rules
func DefaultOptions() Options {
	return Options{
		Lowercase: true,
		Rules:     matcher.DefaultRules(),
	}
}

// Plugin decorates a host.Host. It is immutable after New and safe for concurrent use.
type Plugin struct {
	host    host.Host
	codec   uuidfmt.Codec
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// Option configures optional Plugin collaborators
type Option func(*Plugin)

// WithLogger sets the logger used for debug records
func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// New creates a plugin wrapping h. Invalid rules fail here.
func New(h host.Host, opts Options, options ...Option) (*Plugin, error) {
	m, err := matcher.New(opts.Rules)
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		host:    h,
		codec:   uuidfmt.NewCodec(opts.Lowercase),
		matcher: m,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// SelectSearchPrint renders the host search form with eligible condition
// values shown as hyphenated UUIDs. The caller's conditions are left untouched.
func (p *Plugin) SelectSearchPrint(ctx context.Context, req host.Request, w io.Writer) error {
	if req.Table == "" {
		return ErrNoTableSelected
	}

	columns, err := p.suitableColumns(ctx, req.Table)
	if err != nil {
		return err
	}

	temporary := req
	temporary.Where = p.rewrite(req.Where, columns, p.codec.Encode)
	p.logger.Debug("search print", "table", req.Table, "columns", len(columns), "conditions", len(req.Where))

	return p.host.SelectSearchPrint(ctx, temporary, w)
}

// SelectSearchProcess strips hyphens from eligible condition values before the
// host builds its query. The returned query carries the rewritten conditions.
func (p *Plugin) SelectSearchProcess(ctx context.Context, req host.Request, fields []models.Field) (host.Query, error) {
	if req.Table == "" {
		return host.Query{}, ErrNoTableSelected
	}

	columns := p.matcher.SuitableColumns(req.Table, fields)

	processed := req
	processed.Where = p.rewrite(req.Where, columns, p.codec.Decode)
	p.logger.Debug("search process", "table", req.Table, "columns", len(columns), "conditions", len(req.Where))

	return p.host.SelectSearchProcess(ctx, processed, fields)
}

// RowDescriptions formats eligible column values of every row as hyphenated UUIDs
func (p *Plugin) RowDescriptions(ctx context.Context, req host.Request, rows []models.Row) ([]models.Row, error) {
	if req.Table == "" {
		return nil, ErrNoTableSelected
	}

	columns, err := p.suitableColumns(ctx, req.Table)
	if err != nil {
		return nil, err
	}

	described := make([]models.Row, len(rows))
	for i, row := range rows {
		described[i] = p.describeRow(row, columns)
	}
	p.logger.Debug("row descriptions", "table", req.Table, "columns", len(columns), "rows", len(rows))

	return p.host.RowDescriptions(ctx, req, described)
}

// IsSuitable reports whether field of table is transcoded by this plugin
func (p *Plugin) IsSuitable(table string, field models.Field) bool {
	return p.matcher.IsSuitable(table, field)
}

// Codec returns the plugin's codec
func (p *Plugin) Codec() uuidfmt.Codec {
	return p.codec
}

func (p *Plugin) suitableColumns(ctx context.Context, table string) (map[string]bool, error) {
	fields, err := p.host.Fields(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("uuidview: %w", err)
	}
	return p.matcher.SuitableColumns(table, fields), nil
}

// rewrite returns a copy of conditions with convert applied to eligible values
func (p *Plugin) rewrite(conditions []models.FilterCondition, columns map[string]bool, convert func(string) string) []models.FilterCondition {
	out := models.CloneConditions(conditions)
	for i := range out {
		if columns[out[i].Column] {
			out[i].Value = convert(out[i].Value)
		}
	}
	return out
}

func (p *Plugin) describeRow(row models.Row, columns map[string]bool) models.Row {
	if len(columns) == 0 {
		return row
	}

	out := row.Clone()
	for column, value := range row {
		if !columns[column] {
			continue
		}
		out[column] = p.encodeValue(value)
	}
	return out
}

// encodeValue formats 16-byte string or []byte values; anything else passes through
func (p *Plugin) encodeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []byte:
		if len(v) != uuidfmt.Size {
			return value
		}
		return p.codec.EncodeBytes(v)
	case string:
		return p.codec.Encode(v)
	default:
		return value
	}
}
