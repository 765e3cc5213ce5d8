package reconcile

// MaxChildren is the number of child slots on a submission form.
const MaxChildren = 3

// Child is one child slot of a submission as entered by the parent.
type Child struct {
	// GivenName is empty for unfilled slots.
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Class      string `json:"class"`
}

// FullName returns "given family", the form compared against registry names.
func (c Child) FullName() string {
	return c.GivenName + " " + c.FamilyName
}

// Submission is one parent's form entry.
type Submission struct {
	ParentGivenName  string `json:"parent_given_name"`
	ParentFamilyName string `json:"parent_family_name"`
	ParentEmail      string `json:"parent_email"`

	// Verified mirrors the manual "Kontrolliert" flag. Unverified submissions are never matched.
	Verified bool `json:"verified"`

	// Children holds the child slots in form order (slot 1 first).
	Children []Child `json:"children"`
}

// RegistryRecord is one student from the school registry export.
type RegistryRecord struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Class      string `json:"class"`
	StudentID  string `json:"student_id"`
}

// FullName returns "given family".
func (r RegistryRecord) FullName() string {
	return r.GivenName + " " + r.FamilyName
}

// Candidate pairs a registry record with its similarity to a child.
type Candidate struct {
	Record RegistryRecord `json:"record"`
	Score  float64        `json:"score"`
}

// MatchOutcome is the result of resolving one child.
// Best is nil when the child's class has no registry records.
// When Second is set, Second.Score <= Best.Score.
type MatchOutcome struct {
	Best   *Candidate `json:"best,omitempty"`
	Second *Candidate `json:"second,omitempty"`
}

// HasMatch reports whether any candidate was found.
func (o MatchOutcome) HasMatch() bool {
	return o.Best != nil
}

// Policy holds the score thresholds applied to outcomes.
type Policy struct {
	// AcceptThreshold is the score the best candidate must exceed to produce an account.
	AcceptThreshold float64
	// AmbiguityCeiling is the best score at or below which a present second candidate
	// flags the outcome for review.
	AmbiguityCeiling float64
}

// DefaultPolicy returns the thresholds used in production (0.5 accept, 0.9 ambiguity).
func DefaultPolicy() Policy {
	return Policy{
		AcceptThreshold:  0.5,
		AmbiguityCeiling: 0.9,
	}
}

// Ambiguous reports whether the outcome needs human review.
func (p Policy) Ambiguous(o MatchOutcome) bool {
	return o.Best != nil && o.Second != nil && o.Best.Score <= p.AmbiguityCeiling
}

// Acceptable reports whether the outcome may produce an account, regardless of ambiguity.
func (p Policy) Acceptable(o MatchOutcome) bool {
	return o.Best != nil && o.Best.Score > p.AcceptThreshold
}

// Outcome labels used for logging and metrics.
const (
	OutcomeNoCandidate   = "no_candidate"
	OutcomeAmbiguous     = "ambiguous"
	OutcomeLowConfidence = "low_confidence"
	OutcomeAccepted      = "accepted"
)

// AuditEntry is one row of the control output. It is written for every outcome with a best
// candidate, accepted or not.
type AuditEntry struct {
	ParentGivenName    string  `json:"parent_given_name"`
	ParentFamilyName   string  `json:"parent_family_name"`
	Email              string  `json:"email"`
	StudentID          string  `json:"student_id"`
	ChildGivenName     string  `json:"child_given_name"`
	ChildFamilyName    string  `json:"child_family_name"`
	RegistryGivenName  string  `json:"registry_given_name"`
	RegistryFamilyName string  `json:"registry_family_name"`
	BestScore          float64 `json:"best_score"`

	// SecondScore is nil when the class held a single candidate.
	SecondScore *float64 `json:"second_score,omitempty"`

	// SecondStudentID identifies the runner-up for reviewers.
	SecondStudentID string `json:"second_student_id,omitempty"`

	Ambiguous bool `json:"ambiguous"`
	Accepted  bool `json:"accepted"`
}

// AccountEntry is one parent login to be created.
type AccountEntry struct {
	ParentGivenName  string `json:"parent_given_name"`
	ParentFamilyName string `json:"parent_family_name"`
	Email            string `json:"email"`
	StudentID        string `json:"student_id"`
	Username         string `json:"username"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// Submissions is the number of submissions read.
	Submissions int `json:"submissions"`
	// Verified is the number of submissions flagged as verified.
	Verified int `json:"verified"`
	// Children is the number of filled child slots of verified submissions.
	Children int `json:"children"`
	// NoCandidate counts children whose class has no registry records.
	NoCandidate int `json:"no_candidate"`
	// Ambiguous counts outcomes flagged for review.
	Ambiguous int `json:"ambiguous"`
	// LowConfidence counts outcomes at or below the accept threshold.
	LowConfidence int `json:"low_confidence"`
	// Accepted counts account rows.
	Accepted int `json:"accepted"`
	// RegistryRecords is the size of the roster index.
	RegistryRecords int `json:"registry_records"`
}

// Result is the output of a reconciliation run.
type Result struct {
	// Audit holds every outcome with a best candidate, in submission and slot order.
	Audit []AuditEntry `json:"audit"`
	// Accounts holds the accepted subset of Audit with derived usernames, same order.
	Accounts []AccountEntry `json:"accounts"`
	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// AmbiguousEntries returns the audit rows flagged for review.
func (r *Result) AmbiguousEntries() []AuditEntry {
	var out []AuditEntry
	for _, e := range r.Audit {
		if e.Ambiguous {
			out = append(out, e)
		}
	}
	return out
}
