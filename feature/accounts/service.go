package accounts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"elternaccounts/core/config"
	"elternaccounts/core/logger"
	"elternaccounts/core/metrics"
	"elternaccounts/core/reconcile"
	"elternaccounts/core/roster"
	"elternaccounts/core/storage"
	"elternaccounts/core/username"
	"elternaccounts/feature/ledger"
	"elternaccounts/feature/mail"
	"elternaccounts/feature/sheet"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned when another run holds the lock file.
var ErrRunInProgress = errors.New("another reconciliation run is in progress")

// Run sources recorded in the ledger and metrics.
const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
)

// Deps are the collaborators of a Service. Sheets, Ledger and Metrics are optional.
type Deps struct {
	Client    storage.Client
	Bucket    string
	Config    config.Accounts
	Engine    *reconcile.Engine
	Generator *username.Generator
	Cache     *reconcile.IndexCache
	Sheets    *sheet.Service
	Ledger    *ledger.Store
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Service runs reconciliations against the bucket.
type Service struct {
	client    storage.Client
	bucket    string
	cfg       config.Accounts
	engine    *reconcile.Engine
	generator *username.Generator
	cache     *reconcile.IndexCache
	sheets    *sheet.Service
	ledger    *ledger.Store
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time

	// indexKey is the cache key of the registry version seen last.
	mu       sync.Mutex
	indexKey string
}

// NewService creates a new accounts service.
func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Generator == nil {
		d.Generator = username.NewGenerator(username.DefaultMapping())
	}
	if d.Engine == nil {
		d.Engine = reconcile.NewEngine(reconcile.EngineConfig{Policy: reconcile.DefaultPolicy()}, d.Generator, d.Logger)
	}
	if d.Cache == nil {
		d.Cache = reconcile.NewIndexCache(0)
	}
	return &Service{
		client:    d.Client,
		bucket:    d.Bucket,
		cfg:       d.Config,
		engine:    d.Engine,
		generator: d.Generator,
		cache:     d.Cache,
		sheets:    d.Sheets,
		ledger:    d.Ledger,
		metrics:   d.Metrics,
		logger:    d.Logger,
		now:       time.Now,
	}
}

// RunReport describes a finished storage-backed run.
type RunReport struct {
	RunID       string                 `json:"run_id"`
	Source      string                 `json:"source"`
	StartedAt   time.Time              `json:"started_at"`
	Duration    string                 `json:"duration"`
	Summary     reconcile.Summary      `json:"summary"`
	Sheet       *sheet.Result          `json:"sheet,omitempty"`
	AuditKey    string                 `json:"audit_key"`
	AccountsKey string                 `json:"accounts_key"`
	Ambiguous   []reconcile.AuditEntry `json:"ambiguous"`
	Drift       []ledger.Drift         `json:"drift"`
	Recipients  []string               `json:"recipients"`
}

// Run performs a full reconciliation: optional forms merge, download of the sheet and
// the registry export, matching, upload of both outputs and the ledger entry.
func (s *Service) Run(ctx context.Context, source string) (report *RunReport, err error) {
	started := s.now()
	if s.metrics != nil {
		defer func() { s.metrics.ObserveRun(source, started, err) }()
	}

	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	report = &RunReport{
		RunID:       uuid.NewString(),
		Source:      source,
		StartedAt:   started,
		AuditKey:    s.cfg.AuditKey,
		AccountsKey: s.cfg.AccountsKey,
	}
	l := logger.WithRun(s.logger, report.RunID, source)
	l.Info("Reconciliation started")

	sheetData, err := s.loadSheet(ctx, report)
	if err != nil {
		return nil, err
	}
	subs, err := roster.ReadSubmissions(bytes.NewReader(sheetData))
	if err != nil {
		return nil, err
	}

	index, etag, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.RunWithIndex(ctx, subs, index)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	out, err := Render(result)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, out); err != nil {
		return nil, err
	}

	report.Summary = result.Summary
	report.Ambiguous = result.AmbiguousEntries()
	report.Drift = s.checkDrift(ctx, l, result.Accounts)
	report.Recipients = mail.Recipients(result.Accounts)
	report.Duration = s.now().Sub(started).String()

	if s.ledger != nil {
		run := &ledger.Run{
			ID:           report.RunID,
			Source:       source,
			StartedAt:    started,
			FinishedAt:   s.now(),
			RegistryETag: etag,
		}
		ledger.RunFromResult(run, result.Summary)
		if err := s.ledger.RecordRun(ctx, run, result.Accounts); err != nil {
			// outputs are already uploaded; a missing ledger entry is not fatal
			l.Error("Failed to record run", zap.Error(err))
		}
	}

	l.Info("Reconciliation finished",
		zap.Int("submissions", result.Summary.Submissions),
		zap.Int("verified", result.Summary.Verified),
		zap.Int("children", result.Summary.Children),
		zap.Int("no_candidate", result.Summary.NoCandidate),
		zap.Int("ambiguous", result.Summary.Ambiguous),
		zap.Int("low_confidence", result.Summary.LowConfidence),
		zap.Int("accepted", result.Summary.Accepted),
		zap.String("duration", report.Duration),
	)
	return report, nil
}

// Reconcile matches uploaded files without touching storage or the ledger.
func (s *Service) Reconcile(ctx context.Context, submissions, registry io.Reader) (result *reconcile.Result, err error) {
	if s.metrics != nil {
		started := s.now()
		defer func() { s.metrics.ObserveRun(SourceHTTP, started, err) }()
	}

	subs, err := roster.ReadSubmissions(submissions)
	if err != nil {
		return nil, err
	}
	records, err := roster.ReadRegistry(registry)
	if err != nil {
		return nil, err
	}
	return s.engine.Run(ctx, subs, records)
}

// Username derives a username with the configured mapping.
func (s *Service) Username(given, family string, style username.Style) string {
	return s.generator.Username(given, family, style)
}

// Runs lists recent runs from the ledger.
func (s *Service) Runs(ctx context.Context, limit int) ([]ledger.Run, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return s.ledger.ListRuns(ctx, limit)
}

// ErrLedgerDisabled is returned by Runs when no database is configured.
var ErrLedgerDisabled = errors.New("run ledger is not configured")

func (s *Service) lock() (func(), error) {
	if s.cfg.LockFile == "" {
		return func() {}, nil
	}
	fl := flock.New(s.cfg.LockFile)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", s.cfg.LockFile, err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("Failed to release run lock", zap.Error(err))
		}
	}, nil
}

func (s *Service) loadSheet(ctx context.Context, report *RunReport) ([]byte, error) {
	if s.sheets != nil && s.cfg.MergeForms {
		res, err := s.sheets.Update(ctx, s.cfg.SheetKey, s.cfg.BackupPrefix)
		if err != nil {
			return nil, err
		}
		report.Sheet = res
		return res.Data, nil
	}

	obj, err := storage.Download(ctx, s.client, s.bucket, s.cfg.SheetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions sheet: %w", err)
	}
	return obj.Data, nil
}

// loadIndex returns the roster index for the current registry object version.
func (s *Service) loadIndex(ctx context.Context) (*reconcile.RosterIndex, string, error) {
	info, err := storage.Stat(ctx, s.client, s.bucket, s.cfg.RegistryKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load registry export: %w", err)
	}

	key := s.cfg.RegistryKey + "@" + info.ETag
	s.mu.Lock()
	if s.indexKey != "" && s.indexKey != key {
		s.cache.Invalidate(s.indexKey)
	}
	s.indexKey = key
	s.mu.Unlock()

	index, err := s.cache.GetOrBuild(ctx, key, func(ctx context.Context) ([]reconcile.RegistryRecord, error) {
		obj, err := storage.Download(ctx, s.client, s.bucket, s.cfg.RegistryKey)
		if err != nil {
			return nil, err
		}
		return roster.ReadRegistry(bytes.NewReader(obj.Data))
	})
	if err != nil {
		return nil, "", err
	}
	return index, info.ETag, nil
}

func (s *Service) persist(ctx context.Context, out *Outputs) error {
	if err := storage.Upload(ctx, s.client, s.bucket, s.cfg.AuditKey, out.Audit, storage.ContentTypeCSV); err != nil {
		return err
	}
	if err := storage.Upload(ctx, s.client, s.bucket, s.cfg.AccountsKey, out.Accounts, storage.ContentTypeCSV); err != nil {
		return err
	}

	if s.cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	files := map[string][]byte{
		s.cfg.AuditKey:    out.Audit,
		s.cfg.AccountsKey: out.Accounts,
	}
	for key, data := range files {
		target := filepath.Join(s.cfg.OutputDir, path.Base(key))
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}

func (s *Service) checkDrift(ctx context.Context, l *zap.Logger, accounts []reconcile.AccountEntry) []ledger.Drift {
	if s.ledger == nil || len(accounts) == 0 {
		return nil
	}
	issued, err := s.ledger.IssuedUsernames(ctx, accounts)
	if err != nil {
		l.Warn("Failed to load issued usernames", zap.Error(err))
		return nil
	}
	drift := ledger.FindDrift(issued, accounts)
	for _, d := range drift {
		l.Warn("Username differs from earlier run",
			zap.String("email", d.Email),
			zap.String("student_id", d.StudentID),
			zap.String("previous", d.Previous),
			zap.String("current", d.Current),
		)
	}
	return drift
}
