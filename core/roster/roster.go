package roster

import (
	"fmt"
	"io"
	"strconv"

	"elternaccounts/core/reconcile"
	"elternaccounts/core/tabular"
	"elternaccounts/core/utils"
)

// Delimiters of the files handled by this package.
const (
	SubmissionComma = ','
	RegistryComma   = ';'
	OutputComma     = ';'
)

// ParseSubmissions converts a submission sheet. Missing child slot columns are treated as
// empty slots; missing parent or verification columns fail with ErrMissingInputField.
func ParseSubmissions(t *tabular.Table) ([]reconcile.Submission, error) {
	if err := t.Require(SubmissionColumns...); err != nil {
		return nil, err
	}

	subs := make([]reconcile.Submission, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		sub := reconcile.Submission{
			ParentGivenName:  t.Value(i, ColParentGivenName),
			ParentFamilyName: t.Value(i, ColParentFamilyName),
			ParentEmail:      t.Value(i, ColParentEmail),
			Verified:         utils.ToBool(t.Value(i, ColVerified)),
			Children:         make([]reconcile.Child, 0, reconcile.MaxChildren),
		}
		for _, cols := range childColumns {
			sub.Children = append(sub.Children, reconcile.Child{
				GivenName:  t.Value(i, cols[0]),
				FamilyName: t.Value(i, cols[1]),
				Class:      t.Value(i, cols[2]),
			})
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// ParseRegistry converts a registry export, keeping row order.
func ParseRegistry(t *tabular.Table) ([]reconcile.RegistryRecord, error) {
	if err := t.Require(RegistryColumns...); err != nil {
		return nil, err
	}

	records := make([]reconcile.RegistryRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		records = append(records, reconcile.RegistryRecord{
			GivenName:  t.Value(i, ColRegistryGivenName),
			FamilyName: t.Value(i, ColRegistryLastName),
			Class:      t.Value(i, ColRegistryClass),
			StudentID:  t.Value(i, ColRegistryStudentID),
		})
	}
	return records, nil
}

// ReadSubmissions reads and converts a comma separated submission sheet.
func ReadSubmissions(r io.Reader) ([]reconcile.Submission, error) {
	t, err := tabular.Read(r, tabular.Options{Comma: SubmissionComma})
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}
	subs, err := ParseSubmissions(t)
	if err != nil {
		return nil, fmt.Errorf("invalid submissions: %w", err)
	}
	return subs, nil
}

// ReadRegistry reads and converts a semicolon separated registry export.
func ReadRegistry(r io.Reader) ([]reconcile.RegistryRecord, error) {
	t, err := tabular.Read(r, tabular.Options{Comma: RegistryComma})
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	records, err := ParseRegistry(t)
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	return records, nil
}

// WriteAudit writes the audit output. An absent second score is an empty cell.
func WriteAudit(w io.Writer, entries []reconcile.AuditEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		second := ""
		if e.SecondScore != nil {
			second = formatScore(*e.SecondScore)
		}
		rows = append(rows, []string{
			e.ParentGivenName,
			e.ParentFamilyName,
			e.Email,
			e.StudentID,
			e.ChildGivenName,
			e.ChildFamilyName,
			e.RegistryGivenName,
			e.RegistryFamilyName,
			e.StudentID,
			formatScore(e.BestScore),
			second,
		})
	}
	return tabular.Write(w, AuditHeader, rows, tabular.Options{Comma: OutputComma})
}

// WriteAccounts writes the accounts output.
func WriteAccounts(w io.Writer, entries []reconcile.AccountEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ParentGivenName,
			e.ParentFamilyName,
			e.Email,
			e.StudentID,
			e.Username,
		})
	}
	return tabular.Write(w, AccountsHeader, rows, tabular.Options{Comma: OutputComma})
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
