// Package forms fetches registration form data from the Nextcloud Forms OCS API.
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiPath = "/ocs/v2.php/apps/forms/api/v2.4/"

// ErrNotConfigured is returned when no form URL or hash is configured.
var ErrNotConfigured = errors.New("forms export not configured")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Form is one entry of the forms listing.
type Form struct {
	ID      int    `json:"id"`
	Hash    string `json:"hash"`
	Title   string `json:"title"`
	Expires int64  `json:"expires"`
}

type ocsEnvelope[T any] struct {
	OCS struct {
		Meta struct {
			Status     string `json:"status"`
			StatusCode int    `json:"statuscode"`
			Message    string `json:"message"`
		} `json:"meta"`
		Data T `json:"data"`
	} `json:"ocs"`
}

// Client talks to one Nextcloud instance with basic auth.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client. A nil httpClient uses one with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) request(ctx context.Context, method, endpoint string) ([]byte, error) {
	if c.cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	target := c.cfg.URL + apiPath + endpoint
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	req.Header.Set("OCS-APIRequest", "true")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s: %w", target, err)
	}
	return body, nil
}

// Forms lists the forms owned by the configured user.
func (c *Client) Forms(ctx context.Context) ([]Form, error) {
	body, err := c.request(ctx, http.MethodGet, "forms")
	if err != nil {
		return nil, err
	}
	var env ocsEnvelope[[]Form]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode forms listing: %w", err)
	}
	return env.OCS.Data, nil
}

// ExportSubmissions downloads all submissions of a form as CSV. An empty hash uses the
// configured form.
func (c *Client) ExportSubmissions(ctx context.Context, hash string) ([]byte, error) {
	if hash == "" {
		hash = c.cfg.FormHash
	}
	if hash == "" {
		return nil, ErrNotConfigured
	}
	return c.request(ctx, http.MethodGet, "submissions/export/"+url.PathEscape(hash))
}
