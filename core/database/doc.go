// Package database opens the run ledger database through GORM.
//
// MySQL is used for shared deployments, SQLite (a local file) for single-host setups
// and tests. Connect verifies the connection with a ping bounded by the configured
// timeout. The ledger is optional: callers log a connection failure and continue
// without it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition. The integrity
// check uses them to verify that the ledger tables carry the expected columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "runs", []string{"id", "started_at"})
package database
