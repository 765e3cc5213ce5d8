package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE issued_accounts (id INTEGER PRIMARY KEY, email TEXT, username TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "issued_accounts")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["email"])

	// PRAGMA table_info returns no rows for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE runs (id TEXT PRIMARY KEY, started_at DATETIME)").Error)

	missing, err := MissingColumns(db, "runs", []string{"id", "started_at", "accepted"})
	require.NoError(t, err)
	assert.Equal(t, []string{"accepted"}, missing)
}
