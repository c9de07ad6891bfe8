package api_test

import (
	"net/http"
	"strings"
	"testing"

	"git.sr.ht/~jakintosh/sigil/internal/api"
	"git.sr.ht/~jakintosh/sigil/internal/testutil"
)

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	body := `{
		"email": "alice@example.com",
		"name": "Alice",
		"password": "s3cret!pass"
	}`
	var res api.AuthResponse
	result := testutil.PostJSON(env.Router, "/auth/register", body, &res)
	testutil.ExpectStatus(t, http.StatusCreated, result)

	if res.User.Email != "alice@example.com" || res.User.Name != "Alice" {
		t.Errorf("user = %+v, want registered fields", res.User)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("response must include both tokens")
	}

	// tokens also travel as httpOnly cookies
	cookies := result.Headers.Values("Set-Cookie")
	if len(cookies) != 2 {
		t.Fatalf("got %d Set-Cookie headers, want 2", len(cookies))
	}
	for _, c := range cookies {
		if !strings.Contains(c, "HttpOnly") {
			t.Errorf("cookie not httpOnly: %s", c)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	env.RegisterTestIdentity(t, "alice@example.com", "Alice", "s3cret!pass")

	body := `{
		"email": "alice@example.com",
		"name": "Mallory",
		"password": "other!pass1"
	}`
	var res map[string]any
	result := testutil.PostJSON(env.Router, "/auth/register", body, &res)
	testutil.ExpectStatus(t, http.StatusConflict, result)

	if res["message"] != "User with this email already exists" {
		t.Errorf("message = %v, want the conflict message", res["message"])
	}
	if res["success"] != false {
		t.Errorf("success = %v, want false", res["success"])
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","name":"Alice","password":"s3cret!pass"}`},
		{"short name", `{"email":"a@example.com","name":"Al","password":"s3cret!pass"}`},
		{"weak password", `{"email":"a@example.com","name":"Alice","password":"password"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.PostJSON(env.Router, "/auth/register", tt.body, nil)
			testutil.ExpectStatus(t, http.StatusBadRequest, result)
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.PostJSON(env.Router, "/auth/register", "not-json", nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}
