package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nauticalab/envschema/internal/api"
	"github.com/nauticalab/envschema/pkg/schema"
)

func createTempToken(t *testing.T, token string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(token+"\n"), 0o600))
	return path
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL + "/"})

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestClient_Version(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/version", r.URL.Path)
		json.NewEncoder(w).Encode(api.VersionResponse{Version: "v1.2.3"})
	}))
	defer server.Close()

	resp, err := NewClient(ClientConfig{BaseURL: server.URL}).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", resp.Version)
}

func TestClient_Template(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/template", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "static", r.Header.Get("X-Auth-Type"))
		w.Write([]byte("PORT=8080\n"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		TokenPath: createTempToken(t, "test-token"),
		AuthType:  "static",
	})

	template, err := client.Template(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PORT=8080\n", template)
}

func TestClient_Check(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/check", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("values"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer inline", r.Header.Get("Authorization"))

		var snapshot schema.Snapshot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&snapshot))
		assert.Equal(t, schema.Snapshot{"PORT": "80"}, snapshot)

		json.NewEncoder(w).Encode(api.CheckResponse{
			Valid:  true,
			Log:    []schema.Line{{Text: "PORT=80"}},
			Values: schema.Values{"PORT": 80},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "inline"})

	resp, err := client.Check(context.Background(), schema.Snapshot{"PORT": "80"}, true)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, []schema.Line{{Text: "PORT=80"}}, resp.Log)
	assert.Equal(t, float64(80), resp.Values["PORT"])
}

func TestClient_Errors(t *testing.T) {
	t.Run("API error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Bad Request", Message: "bad snapshot", Code: 400})
		}))
		defer server.Close()

		_, err := NewClient(ClientConfig{BaseURL: server.URL}).Check(context.Background(), nil, false)
		require.Error(t, err)
		assert.Equal(t, "API error: bad snapshot (code: 400)", err.Error())
	})

	t.Run("plain error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized: missing Authorization header", http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := NewClient(ClientConfig{BaseURL: server.URL}).Template(context.Background())
		require.Error(t, err)
		assert.Equal(t, "HTTP 401: Unauthorized: missing Authorization header", err.Error())
	})

	t.Run("unreadable token", func(t *testing.T) {
		client := NewClient(ClientConfig{BaseURL: "http://localhost", TokenPath: filepath.Join(t.TempDir(), "nope")})
		_, err := client.Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read token")
	})
}
