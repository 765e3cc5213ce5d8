package ledger

import (
	"context"
	"fmt"
	"strings"

	"elternaccounts/core/reconcile"

	"gorm.io/gorm"
)

// Identity is the parent and child pair an account is issued for.
type Identity struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
}

// Drift is an account whose username differs from the one issued earlier.
type Drift struct {
	Identity
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// Store persists runs and issued accounts.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the ledger tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}, &IssuedAccount{}); err != nil {
		return fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return nil
}

// RecordRun stores a run and its accounts in one transaction.
func (s *Store) RecordRun(ctx context.Context, run *Run, accounts []reconcile.AccountEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		if len(accounts) == 0 {
			return nil
		}

		rows := make([]IssuedAccount, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, IssuedAccount{
				RunID:            run.ID,
				Email:            a.Email,
				StudentID:        a.StudentID,
				ParentGivenName:  a.ParentGivenName,
				ParentFamilyName: a.ParentFamilyName,
				Username:         a.Username,
			})
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to insert issued accounts: %w", err)
		}
		return nil
	})
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := s.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// IssuedUsernames returns the first username issued for each email of accounts.
func (s *Store) IssuedUsernames(ctx context.Context, accounts []reconcile.AccountEntry) (map[Identity]string, error) {
	out := make(map[Identity]string)
	if len(accounts) == 0 {
		return out, nil
	}

	emails := make([]string, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		e := strings.ToLower(a.Email)
		if !seen[e] {
			seen[e] = true
			emails = append(emails, e)
		}
	}

	var rows []IssuedAccount
	err := s.db.WithContext(ctx).
		Where("email IN ?", emails).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load issued accounts: %w", err)
	}

	for _, r := range rows {
		id := Identity{Email: r.Email, StudentID: r.StudentID}
		if _, ok := out[id]; !ok {
			out[id] = r.Username
		}
	}
	return out, nil
}

// FindDrift compares accounts against earlier issued usernames.
func FindDrift(issued map[Identity]string, accounts []reconcile.AccountEntry) []Drift {
	var drift []Drift
	for _, a := range accounts {
		id := Identity{Email: strings.ToLower(a.Email), StudentID: a.StudentID}
		prev, ok := issued[id]
		if ok && prev != a.Username {
			drift = append(drift, Drift{Identity: id, Previous: prev, Current: a.Username})
		}
	}
	return drift
}

// RunFromResult fills the counters of run from a reconciliation summary.
func RunFromResult(run *Run, s reconcile.Summary) {
	run.Submissions = s.Submissions
	run.Verified = s.Verified
	run.Children = s.Children
	run.NoCandidate = s.NoCandidate
	run.Ambiguous = s.Ambiguous
	run.LowConfidence = s.LowConfidence
	run.Accepted = s.Accepted
	run.RegistryRecords = s.RegistryRecords
}
