package checks

import (
	"fmt"

	"elternaccounts/core/database"
	"elternaccounts/feature/ledger"

	"gorm.io/gorm"
)

// LedgerReport is the result of a ledger schema check.
type LedgerReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the state of one ledger table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// ledgerTables maps each ledger table to its expected columns.
var ledgerTables = map[string][]string{
	ledger.RunsTable:           ledger.RunColumns,
	ledger.IssuedAccountsTable: ledger.IssuedAccountColumns,
}

// CheckLedger verifies the ledger tables carry every column the store writes.
func CheckLedger(db *gorm.DB) (*LedgerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &LedgerReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for table, expected := range ledgerTables {
		missing, err := database.MissingColumns(db, table, expected)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
