package ledger

import "time"

// Run is one finished reconciliation.
type Run struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Source          string    `gorm:"size:16" json:"source"`
	StartedAt       time.Time `gorm:"index" json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	RegistryETag    string    `gorm:"size:128" json:"registry_etag"`
	Submissions     int       `json:"submissions"`
	Verified        int       `json:"verified"`
	Children        int       `json:"children"`
	NoCandidate     int       `json:"no_candidate"`
	Ambiguous       int       `json:"ambiguous"`
	LowConfidence   int       `json:"low_confidence"`
	Accepted        int       `json:"accepted"`
	RegistryRecords int       `json:"registry_records"`
}

// IssuedAccount is one account row produced by a run.
type IssuedAccount struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RunID            string    `gorm:"size:36;index" json:"run_id"`
	Email            string    `gorm:"size:255;index:idx_issued_identity" json:"email"`
	StudentID        string    `gorm:"size:64;index:idx_issued_identity" json:"student_id"`
	ParentGivenName  string    `gorm:"size:128" json:"parent_given_name"`
	ParentFamilyName string    `gorm:"size:128" json:"parent_family_name"`
	Username         string    `gorm:"size:64" json:"username"`
	CreatedAt        time.Time `json:"created_at"`
}

// RunColumns and IssuedAccountColumns list the columns the integrity check expects.
var (
	RunColumns = []string{
		"id", "source", "started_at", "finished_at", "registry_etag", "submissions", "verified",
		"children", "no_candidate", "ambiguous", "low_confidence", "accepted", "registry_records",
	}
	IssuedAccountColumns = []string{
		"id", "run_id", "email", "student_id", "parent_given_name", "parent_family_name",
		"username", "created_at",
	}
)

// Table names as created by Migrate.
const (
	RunsTable           = "runs"
	IssuedAccountsTable = "issued_accounts"
)
