// Package client talks to the upload service: JWT authentication, dataset
// creation, and the legacy ETL endpoints.
//
// Transient failures (connection errors, 429, 5xx) are retried with
// exponential backoff; authentication and validation failures fail fast
// with coded errors.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/graphport/graphport/pkg/buildinfo"
	"github.com/graphport/graphport/pkg/config"
	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/httputil"
	"github.com/graphport/graphport/pkg/session"
)

const requestTimeout = 5 * time.Minute

// Client is an authenticated connection to one upload service.
// It is safe for concurrent use.
type Client struct {
	cfg      config.Config
	http     *http.Client
	sessions session.Store
}

// New creates a client for the configured server. The session store persists
// JWTs between runs; a nil store falls back to in-memory sessions.
func New(cfg config.Config, store session.Store) *Client {
	if store == nil {
		store = session.NewMemoryStore()
	}
	transport := http.DefaultTransport
	if cfg.SkipCertificateValidation {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: requestTimeout, Transport: transport},
		sessions: store,
	}
}

// Server returns the configured server hostname.
func (c *Client) Server() string { return c.cfg.Server }

// do sends one request and decodes a JSON response into out (when non-nil).
// Transient failures come back wrapped for retry; the caller decides whether
// to run it under httputil.Retry.
func (c *Client) do(ctx context.Context, method, url string, contentType string, body []byte, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", buildinfo.Agent+"/"+buildinfo.Version)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, url))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := statusError(resp.StatusCode, method, url, payload)
		if httputil.RetryableStatus(resp.StatusCode) {
			return httputil.Retryable(err)
		}
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "decode response from %s", url)
		}
	}
	return nil
}

// doJSON marshals body as JSON and sends it through do.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any, token string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode request body")
	}
	return c.do(ctx, method, url, "application/json", payload, token, out)
}

func statusError(code int, method, url string, body []byte) error {
	detail := ""
	if len(body) > 0 {
		detail = ": " + string(body)
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "%s %s: status %d%s", method, url, code, detail)
	case http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s %s: status %d%s", method, url, code, detail)
	default:
		return errors.New(errors.ErrCodeNetwork, "%s %s: status %d%s", method, url, code, detail)
	}
}

func (c *Client) url(format string, args ...any) string {
	return c.cfg.BaseURL() + fmt.Sprintf(format, args...)
}
