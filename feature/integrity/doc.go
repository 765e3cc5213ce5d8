// Package integrity validates the storage layout and the run ledger a reconciliation depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the bucket exists and that the input, output and backup folders hold objects.
//   - Inputs: Downloads the submission sheet and the registry export and verifies their headers.
//   - Ledger: Validates that the ledger tables carry every column the store writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/inputs : Runs input check.
//   - GET /integrity/ledger : Runs ledger schema check.
package integrity
