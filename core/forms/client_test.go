package forms_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"elternaccounts/core/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *forms.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, forms.NewClient(forms.Config{
		URL:      srv.URL + "/",
		User:     "admin",
		Password: "secret",
		FormHash: "abc123",
	}, srv.Client())
}

func TestExportSubmissions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ocs/v2.php/apps/forms/api/v2.4/submissions/export/abc123", r.URL.Path)
			assert.Equal(t, "true", r.Header.Get("OCS-APIRequest"))
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "admin", user)
			assert.Equal(t, "secret", pass)
			_, _ = w.Write([]byte("Zeitstempel,Vorname des Elternteils\n"))
		})

		data, err := client.ExportSubmissions(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "Zeitstempel,Vorname des Elternteils\n", string(data))
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := client.ExportSubmissions(context.Background(), "other")
		var statusErr *forms.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		client := forms.NewClient(forms.Config{}, nil)
		_, err := client.ExportSubmissions(context.Background(), "")
		assert.ErrorIs(t, err, forms.ErrNotConfigured)
	})
}

func TestForms(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocs/v2.php/apps/forms/api/v2.4/forms", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ocs":{"meta":{"status":"ok","statuscode":200},"data":[{"id":4,"hash":"abc123","title":"Elternaccounts"}]}}`))
	})

	list, err := client.Forms(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, forms.Form{ID: 4, Hash: "abc123", Title: "Elternaccounts"}, list[0])
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, forms.Config{URL: "https://cloud"}.Enabled())
	assert.True(t, forms.Config{URL: "https://cloud", FormHash: "h"}.Enabled())
}
