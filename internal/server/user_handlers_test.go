package server

import (
	"fmt"
	"net/http"
	"testing"
)

type profileJSON struct {
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

type userJSON struct {
	ID       uint         `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Profile  *profileJSON `json:"profile"`
}

func TestGetMyProfile(t *testing.T) {
	t.Parallel()

	app, _ := setupTestServer(t)
	registerUser(t, app, "alice", "researcher")
	token := obtainToken(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var user userJSON
	decodeBody(t, resp, &user)

	if user.Username != "alice" {
		t.Fatalf("expected alice, got %q", user.Username)
	}
	if user.Profile == nil || user.Profile.Role != "researcher" {
		t.Fatalf("expected researcher profile, got %+v", user.Profile)
	}

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", nil, "")
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestUpdateMyProfile(t *testing.T) {
	t.Parallel()

	app, _ := setupTestServer(t)
	registerUser(t, app, "bob", "subject")
	token := obtainToken(t, app, "bob")

	resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
		"role": "researcher",
		"bio":  "switched teams",
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var user userJSON
	decodeBody(t, resp, &user)
	if user.Profile == nil || user.Profile.Role != "researcher" || user.Profile.Bio != "switched teams" {
		t.Fatalf("profile not updated: %+v", user.Profile)
	}

	// The change persists across requests.
	resp = doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	decodeBody(t, resp, &user)
	if user.Profile == nil || user.Profile.Role != "researcher" {
		t.Fatalf("expected persisted researcher role, got %+v", user.Profile)
	}

	t.Run("invalid role is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
			"role": "admin",
		}, token)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestGetUserSurveys(t *testing.T) {
	t.Parallel()

	app, db := setupTestServer(t)
	registerUser(t, app, "ria", "researcher")
	registerUser(t, app, "other", "researcher")
	seedSurveys(t, db, ownerID(t, db, "ria"), 3)
	seedSurveys(t, db, ownerID(t, db, "other"), 2)

	riaID := ownerID(t, db, "ria")
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/surveys", riaID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var page surveyPageJSON
	decodeBody(t, resp, &page)

	if page.Count != 3 || len(page.Results) != 3 {
		t.Fatalf("expected 3 surveys for ria, got count=%d len=%d", page.Count, len(page.Results))
	}
	for _, s := range page.Results {
		if s.CreatedBy != riaID {
			t.Fatalf("foreign survey in list: %+v", s)
		}
	}

	t.Run("unknown user is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999/surveys", nil, "")
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})
}
