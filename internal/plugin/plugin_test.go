package plugin

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelice/uuidview/internal/host"
	"github.com/rebelice/uuidview/internal/matcher"
	"github.com/rebelice/uuidview/internal/models"
)

const (
	rawHex   = "11223344556677889900aabbccddeeff"
	uuidText = "11223344-5566-7788-9900-aabbccddeeff"
)

func rawID(t *testing.T) string {
	t.Helper()
	b, err := hex.DecodeString(rawHex)
	require.NoError(t, err)
	return string(b)
}

// fakeHost records what the plugin hands to each hook
type fakeHost struct {
	fields    map[string][]models.Field
	fieldsErr error

	printed   host.Request
	processed host.Request
	described []models.Row
	calls     int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		fields: map[string][]models.Field{
			"users": {
				{Name: "id", FullType: "binary(16)"},
				{Name: "name", FullType: "varchar(64)"},
				{Name: "token", FullType: "binary(8)"},
			},
		},
	}
}

func (f *fakeHost) Fields(ctx context.Context, table string) ([]models.Field, error) {
	f.calls++
	if f.fieldsErr != nil {
		return nil, f.fieldsErr
	}
	return f.fields[table], nil
}

func (f *fakeHost) SelectSearchPrint(ctx context.Context, req host.Request, w io.Writer) error {
	f.calls++
	f.printed = req
	for _, c := range req.Where {
		_, _ = io.WriteString(w, c.Column+" "+string(c.Operator)+" "+c.Value+"\n")
	}
	return nil
}

func (f *fakeHost) SelectSearchProcess(ctx context.Context, req host.Request, fields []models.Field) (host.Query, error) {
	f.calls++
	f.processed = req
	return host.Query{SQL: "SELECT 1", Where: req.Where}, nil
}

func (f *fakeHost) RowDescriptions(ctx context.Context, req host.Request, rows []models.Row) ([]models.Row, error) {
	f.calls++
	f.described = rows
	return rows, nil
}

func newPlugin(t *testing.T, h host.Host) *Plugin {
	t.Helper()
	p, err := New(h, DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestNew_InvalidRules(t *testing.T) {
	opts := DefaultOptions()
	opts.Rules.TableNames = "("

	_, err := New(newFakeHost(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, matcher.ErrInvalidPattern))
}

func TestSelectSearchPrint_ShowsUUIDAndRestores(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)

	where := []models.FilterCondition{
		{Column: "name", Operator: models.OpLike, Value: "A%"},
		{Column: "id", Operator: models.OpEqual, Value: rawID(t)},
		{Column: "token", Operator: models.OpEqual, Value: "12345678"},
	}
	original := models.CloneConditions(where)

	var out bytes.Buffer
	err := p.SelectSearchPrint(context.Background(), host.Request{Table: "users", Where: where}, &out)
	require.NoError(t, err)

	assert.Equal(t, []models.FilterCondition{
		{Column: "name", Operator: models.OpLike, Value: "A%"},
		{Column: "id", Operator: models.OpEqual, Value: uuidText},
		{Column: "token", Operator: models.OpEqual, Value: "12345678"},
	}, h.printed.Where)
	assert.Contains(t, out.String(), "id = "+uuidText)

	assert.Equal(t, original, where, "caller's conditions must be unchanged")
}

func TestSelectSearchPrint_ShortValuePassesThrough(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)

	where := []models.FilterCondition{
		{Column: "id", Operator: models.OpEqual, Value: ""},
		{Column: "id", Operator: models.OpEqual, Value: uuidText},
	}

	err := p.SelectSearchPrint(context.Background(), host.Request{Table: "users", Where: where}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, where, h.printed.Where)
}

func TestSelectSearchProcess_StripsHyphens(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)
	fields := h.fields["users"]

	where := []models.FilterCondition{
		{Column: "id", Operator: models.OpEqual, Value: uuidText},
		{Column: "name", Operator: models.OpEqual, Value: "Mary-Jane"},
	}

	q, err := p.SelectSearchProcess(context.Background(), host.Request{Table: "users", Where: where}, fields)
	require.NoError(t, err)

	want := []models.FilterCondition{
		{Column: "id", Operator: models.OpEqual, Value: rawHex},
		{Column: "name", Operator: models.OpEqual, Value: "Mary-Jane"},
	}
	assert.Equal(t, want, h.processed.Where)
	assert.Equal(t, want, q.Where)
	assert.Equal(t, "SELECT 1", q.SQL)
}

func TestSelectSearchProcess_UsesGivenFields(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)

	where := []models.FilterCondition{{Column: "id", Operator: models.OpEqual, Value: uuidText}}
	fields := []models.Field{{Name: "id", FullType: "char(36)"}}

	_, err := p.SelectSearchProcess(context.Background(), host.Request{Table: "users", Where: where}, fields)
	require.NoError(t, err)
	assert.Equal(t, uuidText, h.processed.Where[0].Value)
}

func TestRowDescriptions_EncodesEligibleColumns(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)

	rows := []models.Row{
		{"id": []byte(rawID(t)), "name": "Alice", "token": []byte("12345678")},
		{"id": nil, "name": "Bob", "token": nil},
		{"id": []byte("short"), "name": "Carol", "token": nil},
		{"id": rawID(t), "name": "Dave", "token": nil},
	}

	got, err := p.RowDescriptions(context.Background(), host.Request{Table: "users"}, rows)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, uuidText, got[0]["id"])
	assert.Equal(t, "Alice", got[0]["name"])
	assert.Equal(t, []byte("12345678"), got[0]["token"])

	assert.Nil(t, got[1]["id"])
	assert.Equal(t, "Bob", got[1]["name"])

	assert.Equal(t, []byte("short"), got[2]["id"])
	assert.Equal(t, uuidText, got[3]["id"])

	assert.Equal(t, got, h.described)
	assert.Equal(t, []byte(rawID(t)), rows[0]["id"], "input rows must not be modified")
}

func TestRowDescriptions_Uppercase(t *testing.T) {
	h := newFakeHost()
	opts := DefaultOptions()
	opts.Lowercase = false
	p, err := New(h, opts)
	require.NoError(t, err)

	got, err := p.RowDescriptions(context.Background(), host.Request{Table: "users"},
		[]models.Row{{"id": []byte(rawID(t))}})
	require.NoError(t, err)
	assert.Equal(t, "11223344-5566-7788-9900-AABBCCDDEEFF", got[0]["id"])
}

func TestRowDescriptions_TableRuleExcludes(t *testing.T) {
	h := newFakeHost()
	opts := DefaultOptions()
	opts.Rules.TableNames = "^orders$"
	p, err := New(h, opts)
	require.NoError(t, err)

	rows := []models.Row{{"id": []byte(rawID(t))}}
	got, err := p.RowDescriptions(context.Background(), host.Request{Table: "users"}, rows)
	require.NoError(t, err)
	assert.Equal(t, []byte(rawID(t)), got[0]["id"])
}

func TestHooks_NoTableSelected(t *testing.T) {
	h := newFakeHost()
	p := newPlugin(t, h)
	ctx := context.Background()

	err := p.SelectSearchPrint(ctx, host.Request{}, io.Discard)
	assert.ErrorIs(t, err, ErrNoTableSelected)

	_, err = p.SelectSearchProcess(ctx, host.Request{}, nil)
	assert.ErrorIs(t, err, ErrNoTableSelected)

	_, err = p.RowDescriptions(ctx, host.Request{}, nil)
	assert.ErrorIs(t, err, ErrNoTableSelected)

	assert.Zero(t, h.calls, "host must not be called without a table")
}

func TestHooks_FieldsError(t *testing.T) {
	h := newFakeHost()
	h.fieldsErr = errors.New("boom")
	p := newPlugin(t, h)

	err := p.SelectSearchPrint(context.Background(), host.Request{Table: "users"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = p.RowDescriptions(context.Background(), host.Request{Table: "users"}, nil)
	require.Error(t, err)
}

func TestPlugin_ImplementsHooks(t *testing.T) {
	var _ host.Hooks = newPlugin(t, newFakeHost())
}
