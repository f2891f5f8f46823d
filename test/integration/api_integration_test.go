package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"mufessir/internal/bootstrap"
	"mufessir/internal/config"
	"mufessir/internal/dto"
	"mufessir/internal/server"
	"mufessir/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real migrated database. Skipped unless
// DB_CONNECTION_STRING is set.
func TestAuthFlow(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	email := fmt.Sprintf("it-%s@example.com", uuid.New().String()[:8])
	registerBody, _ := json.Marshal(dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Integration Tester",
	})

	// Register
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var token dto.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	assert.NotEmpty(t, token.Token)

	// Duplicate register
	req = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	// Login with wrong password
	wrongBody, _ := json.Marshal(dto.LoginRequest{Email: email, Password: "wrong-password"})
	req = httptest.NewRequest("POST", "/auth/login", bytes.NewReader(wrongBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	// Me
	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var me dto.MeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, email, me.Email)
	assert.Positive(t, me.DailyQuota)
}

func TestPublicEndpoints(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 10000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/filters", nil), 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var filters dto.FilterOptionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filters))
	assert.Contains(t, filters.SupportedLanguages, "Turkish")
	assert.Equal(t, 1, filters.ToneRange.Min)
	assert.Equal(t, 10, filters.ToneRange.Max)
}
