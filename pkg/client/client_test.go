package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graphport/graphport/pkg/config"
	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/session"
)

func testClient(t *testing.T, srv *httptest.Server, mutate func(*config.Config)) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		Protocol:   "http",
		Server:     u.Host,
		APIVersion: 3,
		Username:   "alice",
		Password:   "wonder",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, session.NewMemoryStore())
}

// ===== Authentication =====

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/auth/token/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "alice" || creds["password"] != "wonder" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-1"})
	}))
	defer srv.Close()

	c := testClient(t, srv, nil)
	tok, err := c.Login(context.Background())
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok != "jwt-1" {
		t.Errorf("token = %q", tok)
	}

	// A stored session short-circuits the next token lookup.
	tok2, err := c.token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok2 != "jwt-1" {
		t.Errorf("token = %q, want cached jwt-1", tok2)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	c := New(config.Default(), session.NewMemoryStore())
	if _, err := c.Login(context.Background()); !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshFallsBackToLogin(t *testing.T) {
	var loginCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/auth/token/refresh":
			http.Error(w, "token expired", http.StatusUnauthorized)
		case "/api/v2/auth/token/generate":
			loginCalls++
			json.NewEncoder(w).Encode(map[string]string{"token": "jwt-fresh"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv, nil)
	// Seed a stale session so Refresh takes the refresh path first.
	c.sessions.Set(context.Background(), session.New(c.cfg.Server, "jwt-stale", session.DefaultTTL))

	tok, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tok != "jwt-fresh" || loginCalls != 1 {
		t.Errorf("token = %q, login calls = %d", tok, loginCalls)
	}
}

// ===== Arrow upload =====

func TestUploadDataset(t *testing.T) {
	var uploaded []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v2/auth/token/generate":
			json.NewEncoder(w).Encode(map[string]string{"token": "jwt-1"})

		case r.URL.Path == "/api/v2/upload/datasets/":
			if got := r.Header.Get("Authorization"); got != "Bearer jwt-1" {
				t.Errorf("authorization = %q", got)
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "my graph" {
				t.Errorf("name = %v", body["name"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]string{"dataset_id": "ds-123"},
			})

		case strings.HasPrefix(r.URL.Path, "/api/v2/upload/datasets/ds-123/"):
			if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
				t.Errorf("content type = %q", got)
			}
			data, _ := io.ReadAll(r.Body)
			uploaded = append(uploaded, r.URL.Path+":"+string(data))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv, nil)
	id, err := c.UploadDataset(context.Background(), DatasetUpload{
		Name:     "my graph",
		EdgeFile: []byte("edge-ipc"),
		NodeFile: []byte("node-ipc"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if id != "ds-123" {
		t.Errorf("dataset id = %q", id)
	}
	if len(uploaded) != 2 {
		t.Fatalf("uploads = %v", uploaded)
	}
	if !strings.Contains(uploaded[0], "edges/arrow:edge-ipc") || !strings.Contains(uploaded[1], "nodes/arrow:node-ipc") {
		t.Errorf("uploads = %v", uploaded)
	}
}

func TestUploadRetriesTransientFailures(t *testing.T) {
	var createCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/auth/token/generate":
			json.NewEncoder(w).Encode(map[string]string{"token": "jwt-1"})
		case "/api/v2/upload/datasets/":
			createCalls++
			if createCalls == 1 {
				http.Error(w, "try again", http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"dataset_id": "ds-9"})
		default:
			w.Write([]byte("{}"))
		}
	}))
	defer srv.Close()

	c := testClient(t, srv, nil)
	id, err := c.UploadDataset(context.Background(), DatasetUpload{Name: "g"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if id != "ds-9" || createCalls != 2 {
		t.Errorf("id = %q, create calls = %d", id, createCalls)
	}
}

// ===== Legacy ETL =====

func TestETL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/etl" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "legacy-key" || q.Get("apiversion") != "1" {
			t.Errorf("unexpected query: %v", q)
		}
		json.NewEncoder(w).Encode(UploadInfo{Name: "ds-abc", Type: "edgelist", Viztoken: "vt"})
	}))
	defer srv.Close()

	c := testClient(t, srv, func(cfg *config.Config) {
		cfg.APIVersion = 1
		cfg.Key = "legacy-key"
	})
	info, err := c.ETL(context.Background(), 1, map[string]any{"name": "ds"})
	if err != nil {
		t.Fatalf("etl: %v", err)
	}
	if info.Name != "ds-abc" || info.Viztoken != "vt" {
		t.Errorf("info = %+v", info)
	}
}

func TestETLRequiresKey(t *testing.T) {
	c := New(config.Default(), session.NewMemoryStore())
	if _, err := c.ETL(context.Background(), 1, nil); !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
