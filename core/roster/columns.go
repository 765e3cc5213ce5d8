package roster

import (
	"fmt"

	"elternaccounts/core/reconcile"
)

// Submission sheet columns.
const (
	ColVerified         = "Kontrolliert"
	ColTimestamp        = "Zeitstempel"
	ColParentGivenName  = "Vorname des Elternteils"
	ColParentFamilyName = "Nachname des Elternteils"
	ColParentEmail      = "Emailadresse des Elternteils"
)

// Registry export columns.
const (
	ColRegistryClass     = "webuntisKlasse"
	ColRegistryGivenName = "US_firstName"
	ColRegistryLastName  = "US_lastName"
	ColRegistryStudentID = "AT_webuntisUid"
)

// ChildGivenName returns the given name column of child slot i (1-based).
func ChildGivenName(i int) string { return fmt.Sprintf("Vorname des %d. Kindes", i) }

// ChildFamilyName returns the family name column of child slot i (1-based).
func ChildFamilyName(i int) string { return fmt.Sprintf("Nachname des %d. Kindes", i) }

// ChildClass returns the class column of child slot i (1-based).
func ChildClass(i int) string { return fmt.Sprintf("Klasse des %d. Kindes", i) }

// SubmissionColumns lists the columns a submission sheet must have.
var SubmissionColumns = []string{
	ColVerified,
	ColParentGivenName,
	ColParentFamilyName,
	ColParentEmail,
}

// RegistryColumns lists the columns a registry export must have.
var RegistryColumns = []string{
	ColRegistryClass,
	ColRegistryGivenName,
	ColRegistryLastName,
	ColRegistryStudentID,
}

// AuditHeader is the header of the audit output.
var AuditHeader = []string{
	"Eltern Vorname",
	"Eltern Nachname",
	"email",
	"student-id",
	"Kind Vorname (forms)",
	"Kind Nachname (forms)",
	"Kind Vorname (schild)",
	"Kind Nachname (schild)",
	"AT_webuntisUid",
	"Best Similarity Score",
	"Second Best Similarity Score",
}

// AccountsHeader is the header of the accounts output.
var AccountsHeader = []string{
	"Eltern Vorname",
	"Eltern Nachname",
	"email",
	"student-id",
	"username",
}

// childColumns holds given, family and class column names per slot.
var childColumns = func() [][3]string {
	cols := make([][3]string, 0, reconcile.MaxChildren)
	for i := 1; i <= reconcile.MaxChildren; i++ {
		cols = append(cols, [3]string{ChildGivenName(i), ChildFamilyName(i), ChildClass(i)})
	}
	return cols
}()
