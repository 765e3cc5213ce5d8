// Package accounts wires the reconciliation engine to storage, the forms sheet and the run ledger.
//
// A storage-backed run:
//
//  1. takes the run lock file, so a CLI run and a server run never overlap
//  2. merges the current forms export into the master sheet (when enabled)
//  3. loads the registry export, reusing a cached index while its ETag is unchanged
//  4. reconciles, renders both outputs in memory and uploads them
//  5. compares usernames with earlier runs and records the run in the ledger
//
// The HTTP handler additionally offers a stateless reconcile over uploaded files and
// a username endpoint.
package accounts
