package accounts

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"elternaccounts/core/config"
	"elternaccounts/core/database"
	"elternaccounts/core/reconcile"
	"elternaccounts/core/storage"
	"elternaccounts/core/storage/mocks"
	"elternaccounts/feature/ledger"

	"github.com/gofrs/flock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sheetCSV = `Zeitstempel,Kontrolliert,Vorname des Elternteils,Nachname des Elternteils,Emailadresse des Elternteils,Vorname des 1. Kindes,Nachname des 1. Kindes,Klasse des 1. Kindes
t1,1,Eva,Muster,Eva.Muster@Example.org,Anna,Muster,5a
t2,,Tom,Lee,tom@example.org,Tim,Lee,6c
`

const registryCSV = `"webuntisKlasse";"US_firstName";"US_lastName";"AT_webuntisUid"
"5a";"Anna";"Muster";"S1"
"6c";"Tim";"Lee";"S2"
`

func testAccountsConfig(t *testing.T) config.Accounts {
	return config.Accounts{
		SheetKey:    "forms/sheet.csv",
		RegistryKey: "registry/export.csv",
		AuditKey:    "output/control.csv",
		AccountsKey: "output/accounts.csv",
		LockFile:    filepath.Join(t.TempDir(), "run.lock"),
	}
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

// expectInputs registers the storage calls of one run. The registry object is only
// fetched when fetchRegistry is set.
func expectInputs(m *mocks.Client, fetchRegistry bool) {
	m.ExpectStat("bucket", "forms/sheet.csv", "sheet")
	m.ExpectDownload("bucket", "forms/sheet.csv", sheetCSV)
	m.ExpectStat("bucket", "registry/export.csv", "reg-1")
	if fetchRegistry {
		m.ExpectDownload("bucket", "registry/export.csv", registryCSV)
	}
}

func expectOutputs(m *mocks.Client, captured map[string]string) {
	m.CaptureUploads("bucket", captured)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadsBothOutputs", func(t *testing.T) {
		m := new(mocks.Client)
		expectInputs(m, true)
		captured := map[string]string{}
		expectOutputs(m, captured)

		svc := NewService(Deps{Client: m, Bucket: "bucket", Config: testAccountsConfig(t), Logger: zap.NewNop()})
		report, err := svc.Run(ctx, SourceCLI)
		require.NoError(t, err)

		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, SourceCLI, report.Source)
		assert.Equal(t, 2, report.Summary.Submissions)
		assert.Equal(t, 1, report.Summary.Verified)
		assert.Equal(t, 1, report.Summary.Accepted)
		assert.Empty(t, report.Ambiguous)
		assert.Equal(t, []string{"eva.muster@example.org"}, report.Recipients)

		assert.Equal(t,
			"Eltern Vorname;Eltern Nachname;email;student-id;username\nEva;Muster;eva.muster@example.org;S1;evamust\n",
			captured["output/accounts.csv"])
		assert.Contains(t, captured["output/control.csv"], "Eva;Muster;eva.muster@example.org;S1;Anna;Muster;Anna;Muster;S1;1;\n")
		m.AssertExpectations(t)
	})

	t.Run("CachedIndexSkipsRegistryDownload", func(t *testing.T) {
		m := new(mocks.Client)
		expectInputs(m, true)
		m.ExpectDownload("bucket", "forms/sheet.csv", sheetCSV)
		expectOutputs(m, map[string]string{})

		svc := NewService(Deps{
			Client: m,
			Bucket: "bucket",
			Config: testAccountsConfig(t),
			Cache:  reconcile.NewIndexCache(reconcile.Config{CacheTTLSeconds: 300}.CacheTTL()),
		})
		_, err := svc.Run(ctx, SourceHTTP)
		require.NoError(t, err)
		_, err = svc.Run(ctx, SourceHTTP)
		require.NoError(t, err)

		m.AssertNumberOfCalls(t, "GetObject", 3)
	})

	t.Run("LockedRunIsRejected", func(t *testing.T) {
		cfg := testAccountsConfig(t)
		held := flock.New(cfg.LockFile)
		ok, err := held.TryLock()
		require.NoError(t, err)
		require.True(t, ok)
		defer func() { _ = held.Unlock() }()

		m := new(mocks.Client)
		svc := NewService(Deps{Client: m, Bucket: "bucket", Config: cfg})

		_, err = svc.Run(ctx, SourceCLI)
		assert.ErrorIs(t, err, ErrRunInProgress)
		m.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingRegistryWritesNothing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("StatObject", mock.Anything, "bucket", "forms/sheet.csv", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, nil)
		m.On("GetObject", mock.Anything, "bucket", "forms/sheet.csv", minio.GetObjectOptions{}).
			Return(body(sheetCSV), nil)
		m.On("StatObject", mock.Anything, "bucket", "registry/export.csv", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		svc := NewService(Deps{Client: m, Bucket: "bucket", Config: testAccountsConfig(t)})
		_, err := svc.Run(ctx, SourceCLI)
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
		m.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WritesLocalCopies", func(t *testing.T) {
		m := new(mocks.Client)
		expectInputs(m, true)
		expectOutputs(m, map[string]string{})

		cfg := testAccountsConfig(t)
		cfg.OutputDir = filepath.Join(t.TempDir(), "out")
		svc := NewService(Deps{Client: m, Bucket: "bucket", Config: cfg})
		_, err := svc.Run(ctx, SourceCLI)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "accounts.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "evamust")
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "control.csv"))
	})

	t.Run("RecordsRunInLedger", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		store := ledger.NewStore(db)
		require.NoError(t, store.Migrate(ctx))

		require.NoError(t, store.RecordRun(ctx, &ledger.Run{ID: "earlier", Source: SourceCLI}, []reconcile.AccountEntry{
			{Email: "eva.muster@example.org", StudentID: "S1", Username: "evamuste"},
		}))

		m := new(mocks.Client)
		expectInputs(m, true)
		expectOutputs(m, map[string]string{})

		svc := NewService(Deps{Client: m, Bucket: "bucket", Config: testAccountsConfig(t), Ledger: store})
		report, err := svc.Run(ctx, SourceCLI)
		require.NoError(t, err)

		require.Len(t, report.Drift, 1)
		assert.Equal(t, "evamuste", report.Drift[0].Previous)
		assert.Equal(t, "evamust", report.Drift[0].Current)

		runs, err := svc.Runs(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "reg-1", runs[0].RegistryETag)
		assert.Equal(t, 1, runs[0].Accepted)
	})
}

func TestService_Reconcile(t *testing.T) {
	svc := NewService(Deps{})

	result, err := svc.Reconcile(context.Background(), strings.NewReader(sheetCSV), strings.NewReader(registryCSV))
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "S1", result.Accounts[0].StudentID)
}

func TestService_RunsWithoutLedger(t *testing.T) {
	_, err := NewService(Deps{}).Runs(context.Background(), 0)
	assert.ErrorIs(t, err, ErrLedgerDisabled)
}
