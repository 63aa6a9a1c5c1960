package tools_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/animcp/internal/config"
	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/metrics"
	"github.com/raphaelgruber/animcp/internal/mixamo"
	"github.com/raphaelgruber/animcp/internal/token"
	"github.com/raphaelgruber/animcp/internal/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newDeps builds tool dependencies against a mock API base URL.
func newDeps(t *testing.T, baseURL, accessToken string) *tools.Dependencies {
	t.Helper()
	logger := testLogger()

	client := mixamo.New(mixamo.Config{
		Token:        accessToken,
		BaseURL:      baseURL,
		PollInterval: 2 * time.Millisecond,
	}, logger)
	t.Cleanup(client.Close)

	store, err := token.NewStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)

	return &tools.Dependencies{
		Service: fetch.NewService(client, config.Config{}, logger),
		Client:  client,
		Tokens:  store,
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	}
}

// startSession registers all tools on a fresh server, runs it on an
// in-memory transport and returns a connected client session.
func startSession(t *testing.T, deps *tools.Dependencies) *mcp.ClientSession {
	t.Helper()

	impl := &mcp.Implementation{
		Name:    "test-animcp",
		Version: "0.0.1-test",
	}
	server := mcp.NewServer(impl, nil)
	cfg := &config.Config{}
	tools.RegisterAll(server, deps, cfg)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { _ = session.Close() })

	return session
}

// callTool invokes a tool and returns the text content and error flag.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return textContent.Text, result.IsError
}

func TestToolRegistration(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "test-token")
	session := startSession(t, deps)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 6)

	toolNames := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		toolNames[i] = tool.Name
	}
	assert.Contains(t, toolNames, "mixamo_auth")
	assert.Contains(t, toolNames, "mixamo_search")
	assert.Contains(t, toolNames, "mixamo_download")
	assert.Contains(t, toolNames, "mixamo_batch")
	assert.Contains(t, toolNames, "mixamo_keywords")
	assert.Contains(t, toolNames, "mixamo_upload_character")
}

func TestKeywordsTool(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "test-token")
	session := startSession(t, deps)

	t.Run("all categories", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_keywords", map[string]any{})
		require.False(t, isError)

		var result struct {
			Categories map[string][]string `json:"categories"`
			Count      int                 `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &result))
		assert.Contains(t, result.Categories, "locomotion")
		assert.Contains(t, result.Categories, "combat")
		assert.Greater(t, result.Count, 0)
	})

	t.Run("category filter", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_keywords", map[string]any{"category": "combat"})
		require.False(t, isError)

		var result struct {
			Categories map[string][]string `json:"categories"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &result))
		require.Len(t, result.Categories, 1)
		assert.Contains(t, result.Categories["combat"], "punch")
	})

	t.Run("unknown category", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_keywords", map[string]any{"category": "underwater"})
		assert.True(t, isError)
		assert.Contains(t, text, "Unknown category")
	})
}

func TestSearchToolValidation(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "test-token")
	session := startSession(t, deps)

	t.Run("empty query returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_search", map[string]any{"query": ""})
		assert.True(t, isError, "empty query should return error")
		assert.Contains(t, text, "Query cannot be empty")
	})

	t.Run("limit over 96 returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_search", map[string]any{"query": "run", "limit": 150})
		assert.True(t, isError, "limit > 96 should return error")
		assert.Contains(t, text, "Limit must be 1-96")
	})
}

func TestSearchTool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "run" {
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "abc123", "type": "Motion", "name": "Fast Run", "description": "Fast Run"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	deps := newDeps(t, srv.URL, "test-token")
	session := startSession(t, deps)

	text, isError := callTool(t, session, "mixamo_search", map[string]any{"query": "run"})
	require.False(t, isError, "search should succeed: %s", text)

	var result struct {
		Query    string   `json:"query"`
		Expanded []string `json:"expanded_terms"`
		Count    int      `json:"count"`
		Results  []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, "run", result.Query)
	assert.Contains(t, result.Expanded, "run")
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "abc123", result.Results[0].ID)
	assert.Equal(t, "Fast Run", result.Results[0].Name)
}

func TestDownloadTool(t *testing.T) {
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": "abc123", "name": "Fast Run"}},
		})
	})
	mux.HandleFunc("GET /products/abc123", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"type": "Motion", "description": "Fast Run"})
	})
	mux.HandleFunc("POST /animations/export", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /characters/"+mixamo.CharacterYBot+"/monitor", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "completed", "job_result": srv.URL + "/render/r"})
	})
	mux.HandleFunc("GET /render/r", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fbx data"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	deps := newDeps(t, srv.URL, "test-token")
	session := startSession(t, deps)
	outputDir := t.TempDir()

	text, isError := callTool(t, session, "mixamo_download", map[string]any{
		"query":        "run",
		"character_id": mixamo.CharacterYBot,
		"output_dir":   outputDir,
	})
	require.False(t, isError, "download should succeed: %s", text)

	var record struct {
		Keyword       string `json:"keyword"`
		Success       bool   `json:"success"`
		AnimationName string `json:"animation_name"`
		FilePath      string `json:"file_path"`
		Bytes         int64  `json:"bytes"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &record))
	assert.True(t, record.Success)
	assert.Equal(t, "Fast Run", record.AnimationName)
	assert.Equal(t, filepath.Join(outputDir, "Fast_Run.fbx"), record.FilePath)
	assert.FileExists(t, record.FilePath)
}

func TestDownloadToolNotAuthenticated(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "")
	session := startSession(t, deps)

	text, isError := callTool(t, session, "mixamo_download", map[string]any{"query": "run"})
	assert.True(t, isError)
	assert.Contains(t, text, "Not authenticated")
	assert.Contains(t, text, "mixamo_auth")
}

func TestBatchToolValidation(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "test-token")
	session := startSession(t, deps)

	t.Run("empty keywords returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_batch", map[string]any{"keywords": []any{}})
		assert.True(t, isError)
		assert.Contains(t, text, "Keywords cannot be empty")
	})

	t.Run("too many keywords returns error", func(t *testing.T) {
		many := make([]any, 26)
		for i := range many {
			many[i] = "run"
		}
		text, isError := callTool(t, session, "mixamo_batch", map[string]any{"keywords": many})
		assert.True(t, isError)
		assert.Contains(t, text, "Too many keywords")
	})

	t.Run("blank keyword returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_batch", map[string]any{"keywords": []any{"run", ""}})
		assert.True(t, isError)
		assert.Contains(t, text, "must be non-empty")
	})
}

func TestBatchTool(t *testing.T) {
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("GET /characters/primary", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"primary_character_id":   mixamo.CharacterYBot,
			"primary_character_name": "Y Bot",
		})
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": "walk-1", "name": "Walking"}},
		})
	})
	mux.HandleFunc("GET /products/walk-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"type": "Motion", "description": "Walking"})
	})
	mux.HandleFunc("POST /animations/export", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /characters/"+mixamo.CharacterYBot+"/monitor", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "completed", "job_result": srv.URL + "/render/w"})
	})
	mux.HandleFunc("GET /render/w", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fbx"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	deps := newDeps(t, srv.URL, "test-token")
	session := startSession(t, deps)
	outputDir := t.TempDir()

	text, isError := callTool(t, session, "mixamo_batch", map[string]any{
		"keywords":      []any{"walk"},
		"output_dir":    outputDir,
		"delay_seconds": 0,
	})
	require.False(t, isError, "batch should succeed: %s", text)

	var summary struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
		Records    []struct {
			Keyword  string `json:"keyword"`
			FilePath string `json:"file_path"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Records, 1)
	assert.Equal(t, filepath.Join(outputDir, "Y_Bot", "Y_Bot_walk.fbx"), summary.Records[0].FilePath)
}

func TestAuthTool(t *testing.T) {
	var accepted string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /characters", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+accepted {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	deps := newDeps(t, srv.URL, "")
	session := startSession(t, deps)

	t.Run("status without token", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{})
		require.False(t, isError)

		var status struct {
			Authenticated bool `json:"authenticated"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &status))
		assert.False(t, status.Authenticated)
	})

	t.Run("set_token without token returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{"action": "set_token"})
		assert.True(t, isError)
		assert.Contains(t, text, "Token cannot be empty")
	})

	t.Run("set_token persists and validates", func(t *testing.T) {
		accepted = "fresh-token"
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{
			"action": "set_token",
			"token":  "fresh-token",
		})
		require.False(t, isError, "set_token should succeed: %s", text)
		assert.Contains(t, text, "saved and validated")

		stored, err := deps.Tokens.Load()
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", stored)
	})

	t.Run("status with valid token", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{"action": "status"})
		require.False(t, isError)

		var status struct {
			Authenticated bool  `json:"authenticated"`
			Valid         *bool `json:"valid"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &status))
		assert.True(t, status.Authenticated)
		require.NotNil(t, status.Valid)
		assert.True(t, *status.Valid)
	})

	t.Run("rejected token reports invalid", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{
			"action": "set_token",
			"token":  "stale-token",
		})
		assert.True(t, isError)
		assert.Contains(t, text, "failed validation")
	})

	t.Run("clear removes token", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{"action": "clear"})
		require.False(t, isError)
		assert.Contains(t, text, "Token removed")

		stored, err := deps.Tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("unknown action returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_auth", map[string]any{"action": "rotate"})
		assert.True(t, isError)
		assert.Contains(t, text, "Unknown action")
	})
}

func TestUploadToolValidation(t *testing.T) {
	deps := newDeps(t, "http://localhost:0", "test-token")
	session := startSession(t, deps)

	t.Run("empty path returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_upload_character", map[string]any{"file_path": ""})
		assert.True(t, isError)
		assert.Contains(t, text, "File path cannot be empty")
	})

	t.Run("missing file returns error", func(t *testing.T) {
		text, isError := callTool(t, session, "mixamo_upload_character", map[string]any{
			"file_path": filepath.Join(t.TempDir(), "missing.fbx"),
		})
		assert.True(t, isError)
		assert.Contains(t, text, "Cannot read file")
	})
}
