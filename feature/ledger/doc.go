// Package ledger records reconciliation runs and the accounts they issued.
//
// The ledger answers two questions: which runs happened (GET /accounts/runs) and which
// username a parent received before. A username must stay stable across runs, so the
// accounts service compares every new account against IssuedUsernames and logs a
// warning for each Drift (for example after a change to the username mapping).
//
// Tables are created with GORM AutoMigrate on MySQL or SQLite.
package ledger
