package plugin

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelice/uuidview/internal/db/sqlite"
	"github.com/rebelice/uuidview/internal/filter"
	"github.com/rebelice/uuidview/internal/host"
	"github.com/rebelice/uuidview/internal/models"
)

func setupSQLiteAdmin(t *testing.T) *host.Admin {
	t.Helper()

	catalog, err := sqlite.Open(filepath.Join(t.TempDir(), "browse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	db := catalog.DB()
	_, err = db.Exec(`CREATE TABLE users (id BINARY(16) PRIMARY KEY, name VARCHAR(64))`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, name) VALUES (?, 'Alice'), (?, 'Bob')`,
		[]byte(rawID(t)), make([]byte, 16))
	require.NoError(t, err)

	return host.NewAdmin(catalog, filter.NewBuilder(filter.SQLite, 100))
}

func TestBrowse_EndToEnd(t *testing.T) {
	admin := setupSQLiteAdmin(t)
	p, err := New(admin, DefaultOptions())
	require.NoError(t, err)

	where := []models.FilterCondition{
		{Column: "id", Operator: models.OpEqual, Value: uuidText},
	}
	original := models.CloneConditions(where)

	var form bytes.Buffer
	result, err := admin.Browse(context.Background(), p, host.Request{Table: "users", Where: where}, &form)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, uuidText, result.Rows[0]["id"])
	assert.Equal(t, original, where)
	assert.Contains(t, form.String(), uuidText)
}

func TestBrowse_EndToEndAllRows(t *testing.T) {
	admin := setupSQLiteAdmin(t)
	p, err := New(admin, DefaultOptions())
	require.NoError(t, err)

	result, err := admin.Browse(context.Background(), p, host.Request{Table: "users"}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	ids := []interface{}{result.Rows[0]["id"], result.Rows[1]["id"]}
	assert.ElementsMatch(t, []interface{}{uuidText, "00000000-0000-0000-0000-000000000000"}, ids)
}
