package api_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~jakintosh/sigil/internal/api"
	"git.sr.ht/~jakintosh/sigil/internal/testutil"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	env.RegisterTestIdentity(t, "alice@example.com", "Alice", "s3cret!pass")

	body := `{"email": "alice@example.com", "password": "s3cret!pass"}`
	var res api.AuthResponse
	result := testutil.PostJSON(env.Router, "/auth/login", body, &res)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if res.User.Email != "alice@example.com" {
		t.Errorf("user email = %q, want alice@example.com", res.User.Email)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("response must include both tokens")
	}
}

func TestLogin_NormalizesEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	env.RegisterTestIdentity(t, "alice@example.com", "Alice", "s3cret!pass")

	body := `{"email": "  ALICE@Example.COM  ", "password": "s3cret!pass"}`
	result := testutil.PostJSON(env.Router, "/auth/login", body, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
}

func TestLogin_WrongCredentials(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	env.RegisterTestIdentity(t, "alice@example.com", "Alice", "s3cret!pass")

	// unknown email and wrong password produce byte-identical responses
	unknownBody := `{"email": "nobody@example.com", "password": "s3cret!pass"}`
	wrongBody := `{"email": "alice@example.com", "password": "wrong-password"}`

	var unknownRes, wrongRes map[string]any
	unknown := testutil.PostJSON(env.Router, "/auth/login", unknownBody, &unknownRes)
	wrong := testutil.PostJSON(env.Router, "/auth/login", wrongBody, &wrongRes)

	testutil.ExpectStatus(t, http.StatusUnauthorized, unknown)
	testutil.ExpectStatus(t, http.StatusUnauthorized, wrong)

	if unknownRes["message"] != "Invalid email or password" {
		t.Errorf("message = %v, want the uniform credential failure", unknownRes["message"])
	}
	if string(unknown.Body) != string(wrong.Body) {
		t.Errorf("failure bodies differ: %s vs %s", unknown.Body, wrong.Body)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.PostJSON(env.Router, "/auth/login", "{", nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}
