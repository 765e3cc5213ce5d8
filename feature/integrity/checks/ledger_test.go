package checks

import (
	"context"
	"testing"

	"elternaccounts/core/database"
	"elternaccounts/feature/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLedger(t *testing.T) {
	t.Run("NilDB", func(t *testing.T) {
		_, err := CheckLedger(nil)
		assert.Error(t, err)
	})

	t.Run("Migrated", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, ledger.NewStore(db).Migrate(context.Background()))

		report, err := CheckLedger(db)
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "ok", report.Tables[ledger.RunsTable].Status)
		assert.Equal(t, "ok", report.Tables[ledger.IssuedAccountsTable].Status)
	})

	t.Run("MissingColumns", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE runs (id TEXT PRIMARY KEY, source TEXT)").Error)

		report, err := CheckLedger(db)
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "error", report.Tables[ledger.RunsTable].Status)
		assert.Contains(t, report.Tables[ledger.RunsTable].MissingColumns, "accepted")
		assert.Equal(t, ledger.IssuedAccountColumns, report.Tables[ledger.IssuedAccountsTable].MissingColumns)
	})
}
