package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server"
	"gradebook_manager/backend/internal/shared"
)

// TestEnv holds all the running components for the API tests
type TestEnv struct {
	Router http.Handler
	Store  *gradebook.Gradebook
	Config *shared.Config
}

// setupTestEnv builds a router backed by a fresh store in a per-test
// temporary data file, so tests are fully isolated from each other.
func setupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	cfg := &shared.Config{
		HTTPPort:    "8080",
		Environment: "test",
		LogLevel:    "info",
		DataFile:    filepath.Join(t.TempDir(), "data.json"),
		Security: shared.SecurityConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
		CORS: shared.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		},
	}

	store, err := gradebook.New(cfg.DataFile)
	if err != nil {
		t.Fatalf("Failed to open test gradebook: %v", err)
	}

	return &TestEnv{
		Router: server.SetupRoutes(store, cfg),
		Store:  store,
		Config: cfg,
	}
}

// doRequest performs an in-process request against the router. A non-empty
// token is attached as a Bearer authorization header.
func (env *TestEnv) doRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	env.Router.ServeHTTP(rr, req)
	return rr
}

// switchRole obtains a signed token for the given role via the API
func (env *TestEnv) switchRole(t *testing.T, role string) string {
	t.Helper()

	rr := env.doRequest(t, "POST", "/api/role/"+role, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Role switch to %s failed: %d %s", role, rr.Code, rr.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode role response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Role switch returned an empty token")
	}
	return resp.Token
}
