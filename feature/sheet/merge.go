package sheet

import (
	"path"
	"strings"
	"time"

	"elternaccounts/core/roster"
	"elternaccounts/core/tabular"
)

// MergeStats counts what a merge did.
type MergeStats struct {
	MasterRows int `json:"master_rows"`
	ExportRows int `json:"export_rows"`
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
}

// Merge appends the export rows to the master sheet and returns a new table.
//
// Columns are the union of both headers, master order first. Export rows start
// unverified (empty Kontrolliert). Rows whose Zeitstempel was already seen are dropped,
// so master rows and their manual verification always win. Rows without a timestamp
// are kept.
func Merge(master, export *tabular.Table) (*tabular.Table, MergeStats, error) {
	if err := export.Require(roster.ColTimestamp); err != nil {
		return nil, MergeStats{}, err
	}
	if master == nil {
		master = tabular.New(export.Header...)
	} else if master.Len() > 0 {
		if err := master.Require(roster.ColTimestamp); err != nil {
			return nil, MergeStats{}, err
		}
	}

	out := tabular.New(master.Header...)
	for _, h := range export.Header {
		out.AddColumn(h)
	}
	out.AddColumn(roster.ColTimestamp)
	out.AddColumn(roster.ColVerified)

	stats := MergeStats{MasterRows: master.Len(), ExportRows: export.Len()}
	seen := make(map[string]bool, master.Len()+export.Len())

	add := func(row map[string]string) bool {
		ts := strings.TrimSpace(row[roster.ColTimestamp])
		if ts != "" {
			if seen[ts] {
				stats.Duplicates++
				return false
			}
			seen[ts] = true
		}
		out.AppendRow(row)
		return true
	}

	for i := 0; i < master.Len(); i++ {
		add(master.RowMap(i))
	}
	for i := 0; i < export.Len(); i++ {
		row := export.RowMap(i)
		row[roster.ColVerified] = ""
		if add(row) {
			stats.Added++
		}
	}

	return out, stats, nil
}

// BackupKey names the backup of key taken at now: <prefix><name>_backupYYMMDDHHMMSS<ext>.
func BackupKey(prefix, key string, now time.Time) string {
	base := path.Base(key)
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return prefix + name + "_backup" + now.Format("060102150405") + ext
}
