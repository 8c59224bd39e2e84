package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cohort/internal/config"
	"cohort/internal/database"
	"cohort/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret-0123456789-0123456789",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)

	return app, db
}

// doJSON issues a JSON request against the test app, optionally with a Bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// registerUser creates an account through the API and fails the test on any error.
func registerUser(t *testing.T, app *fiber.App, username, role string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/register", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
		"role":     role,
	}, "")
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", username, resp.StatusCode)
	}
}

// obtainToken logs in through the API and returns the access token.
func obtainToken(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/token", fiber.Map{
		"username": username,
		"password": "secret1",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token %s: expected 200, got %d", username, resp.StatusCode)
	}

	var body struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeBody(t, resp, &body)
	if body.Access == "" {
		t.Fatalf("token %s: empty access token", username)
	}
	return body.Access
}
