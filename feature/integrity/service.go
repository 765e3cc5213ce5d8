package integrity

import (
	"context"
	"slices"
	"strings"

	"elternaccounts/core/config"
	"elternaccounts/core/roster"
	"elternaccounts/core/storage"
	"elternaccounts/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	accounts config.Accounts
	logger   *zap.Logger
	db       *gorm.DB
}

// NewService creates a new integrity service. db may be nil when no ledger is configured.
func NewService(client storage.Client, bucket string, accounts config.Accounts, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		accounts: accounts,
		logger:   logger,
		db:       db,
	}
}

// CheckBucket reports whether the bucket exists.
func (s *Service) CheckBucket(ctx context.Context) error {
	return checks.CheckBucket(ctx, s.client, s.bucket)
}

// FixBucket creates the bucket.
func (s *Service) FixBucket(ctx context.Context) error {
	return checks.FixBucket(ctx, s.client, s.bucket, s.logger)
}

// Folders lists the folders a run reads from and writes to.
func (s *Service) Folders() []string {
	a := s.accounts
	folders := checks.Folders(a.SheetKey, a.RegistryKey, a.AuditKey, a.AccountsKey)
	backup := strings.TrimSuffix(a.BackupPrefix, "/")
	if backup != "" && !slices.Contains(folders, backup) {
		folders = append(folders, backup)
	}
	return folders
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.Folders())
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckInputs verifies the submission sheet and the registry export.
func (s *Service) CheckInputs(ctx context.Context) ([]checks.InputReport, error) {
	return checks.CheckInputs(ctx, s.client, s.bucket, []checks.Input{
		{Key: s.accounts.SheetKey, Comma: roster.SubmissionComma, Columns: roster.SubmissionColumns},
		{Key: s.accounts.RegistryKey, Comma: roster.RegistryComma, Columns: roster.RegistryColumns},
	})
}

// CheckLedger verifies the ledger schema.
func (s *Service) CheckLedger() (*checks.LedgerReport, error) {
	return checks.CheckLedger(s.db)
}

// HasLedger reports whether a database is configured.
func (s *Service) HasLedger() bool {
	return s.db != nil
}
