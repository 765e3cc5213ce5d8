// Package config provides configuration management for elternaccounts.
//
// Values come from environment variables, optionally loaded from a .env file, with
// defaults taken from the `default` struct tags of every section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upload limit
//   - Storage: S3/MinIO credentials and bucket
//   - Database: run ledger (mysql or sqlite)
//   - Log: level, format, optional file
//   - Forms: Nextcloud Forms URL, credentials and form hash
//   - Match: thresholds, workers, index cache lifetime
//   - Accounts: object keys of the sheet, registry export, outputs and backups
//
// Keys map to environment variables by upper-casing and replacing dots with
// underscores, e.g. match.accept_threshold is MATCH_ACCEPT_THRESHOLD.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Accounts.SheetKey)
package config
