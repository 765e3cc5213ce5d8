package checks

import (
	"context"
	"io"
	"strings"
	"testing"

	"elternaccounts/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckInputs(t *testing.T) {
	ctx := context.Background()
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "accounts").Return(true, nil)

	mockClient.On("StatObject", mock.Anything, "accounts", "forms/sheet.csv", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{ETag: "a"}, nil)
	mockClient.On("GetObject", mock.Anything, "accounts", "forms/sheet.csv", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("Kontrolliert,Vorname\n1,Eva\n")), nil)

	mockClient.On("StatObject", mock.Anything, "accounts", "registry/export.csv", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	reports, err := CheckInputs(ctx, mockClient, "accounts", []Input{
		{Key: "forms/sheet.csv", Comma: ',', Columns: []string{"Kontrolliert", "Vorname", "Email"}},
		{Key: "registry/export.csv", Comma: ';', Columns: []string{"AT_webuntisUid"}},
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Present)
	assert.Equal(t, "error", reports[0].Status)
	assert.Equal(t, []string{"Email"}, reports[0].MissingColumns)
	assert.Equal(t, 1, reports[0].Rows)
	assert.Equal(t, "utf-8", reports[0].Encoding)

	assert.False(t, reports[1].Present)
	assert.Equal(t, "missing", reports[1].Status)
}
