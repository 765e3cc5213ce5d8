package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"elternaccounts/core/roster"
	"elternaccounts/core/storage"
	"elternaccounts/core/tabular"

	"go.uber.org/zap"
)

// Exporter fetches the current forms export as CSV.
type Exporter interface {
	ExportSubmissions(ctx context.Context, hash string) ([]byte, error)
}

// Result describes a sheet update.
type Result struct {
	Stats     MergeStats `json:"stats"`
	BackupKey string     `json:"backup_key,omitempty"`
	Data      []byte     `json:"-"`
}

// Service keeps the master sheet in storage up to date with the forms export.
type Service struct {
	client   storage.Client
	bucket   string
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new sheet service.
func NewService(client storage.Client, bucket string, exporter Exporter, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Update fetches the export, backs up the current sheet, merges and uploads the result.
// A missing sheet is created from the export.
func (s *Service) Update(ctx context.Context, sheetKey, backupPrefix string) (*Result, error) {
	raw, err := s.exporter.ExportSubmissions(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forms export: %w", err)
	}
	export, err := tabular.Read(bytes.NewReader(raw), tabular.Options{Comma: roster.SubmissionComma})
	if err != nil {
		return nil, fmt.Errorf("failed to parse forms export: %w", err)
	}

	var master *tabular.Table
	obj, err := storage.Download(ctx, s.client, s.bucket, sheetKey)
	switch {
	case err == nil:
		master, err = tabular.Read(bytes.NewReader(obj.Data), tabular.Options{Comma: roster.SubmissionComma})
		if err != nil {
			return nil, fmt.Errorf("failed to parse sheet %s: %w", sheetKey, err)
		}
	case errors.Is(err, storage.ErrObjectNotFound):
		s.logger.Warn("Sheet not found, creating it from the forms export", zap.String("key", sheetKey))
	default:
		return nil, err
	}

	merged, stats, err := Merge(master, export)
	if err != nil {
		return nil, fmt.Errorf("failed to merge forms export: %w", err)
	}

	result := &Result{Stats: stats}
	if master != nil {
		result.BackupKey = BackupKey(backupPrefix, sheetKey, s.now())
		if err := storage.Copy(ctx, s.client, s.bucket, sheetKey, result.BackupKey); err != nil {
			return nil, err
		}
		s.logger.Info("Sheet backed up", zap.String("backup", result.BackupKey))
	}

	var buf bytes.Buffer
	if err := merged.Write(&buf, tabular.Options{Comma: roster.SubmissionComma}); err != nil {
		return nil, fmt.Errorf("failed to render sheet: %w", err)
	}
	if err := storage.Upload(ctx, s.client, s.bucket, sheetKey, buf.Bytes(), storage.ContentTypeCSV); err != nil {
		return nil, err
	}
	result.Data = buf.Bytes()

	s.logger.Info("Sheet updated",
		zap.String("key", sheetKey),
		zap.Int("added", stats.Added),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("rows", merged.Len()),
	)
	return result, nil
}
