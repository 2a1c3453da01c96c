package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/app"
	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/config"
	"github.com/deouf-dev/talemy-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test_secret_key_for_talemy_api_tests"

// TestServer is the full HTTP application running on an httptest server.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// NewTestServer starts the application on a fresh test database with the
// real-time gateway enabled.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := NewTestDB(t)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.ExpiresIn = "1h"

	router, stop, err := app.SetupRouter(cfg, db)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		stop()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		Tokens: auth.NewTokenManager(testJWTSecret, time.Hour),
	}
}

// TokenFor signs a token for an existing user.
func (ts *TestServer) TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := ts.Tokens.Generate(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// WSURL is the gateway address with the token in the query string.
func (ts *TestServer) WSURL(token string) string {
	return strings.Replace(ts.Server.URL, "http", "ws", 1) + "/api/v1/ws?token=" + token
}

// SendRequest performs a JSON request and returns the response with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(resBody)
}

// DecodeJSON unmarshals a response body into out.
func DecodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}
