package identity_test

import (
	"strings"
	"testing"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"plain@example.com", "plain@example.com"},
	}

	for _, tt := range tests {
		if got := identity.NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.example.org",
		"x_y%z@example.co",
	}
	for _, email := range valid {
		if err := identity.ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{
		"",
		"no-at-sign",
		"missing@tld",
		"@example.com",
		"spaces in@example.com",
	}
	for _, email := range invalid {
		if err := identity.ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	if err := identity.ValidateName("Al"); err == nil {
		t.Error("two-character name should be rejected")
	}
	if err := identity.ValidateName("   a   "); err == nil {
		t.Error("whitespace padding should not count toward length")
	}
	if err := identity.ValidateName("Alice"); err != nil {
		t.Errorf("ValidateName(\"Alice\") = %v, want nil", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "abcdef1!", false},
		{"too short", "ab1!", true},
		{"no lowercase", "ABCDEF1!", true},
		{"no number", "abcdefg!", true},
		{"no symbol", "abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := identity.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegistrationCollectsFailures(t *testing.T) {
	t.Parallel()

	err := identity.ValidateRegistration("bad-email", "x", "short")
	if err == nil {
		t.Fatal("expected error for invalid registration")
	}
	msg := err.Error()
	for _, fragment := range []string{"email", "name", "password"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("error %q missing %q failure", msg, fragment)
		}
	}
}

func TestIDs(t *testing.T) {
	t.Parallel()

	id := identity.NewID()
	if !identity.ValidID(id) {
		t.Errorf("NewID produced invalid id %q", id)
	}
	if identity.ValidID("not-a-uuid") {
		t.Error("ValidID accepted a non-uuid")
	}
}

func TestPublicStripsSecrets(t *testing.T) {
	t.Parallel()

	hash := "refresh-hash"
	ident := identity.Identity{
		ID:           identity.NewID(),
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "bcrypt-hash",
		RefreshHash:  &hash,
	}

	pub := ident.Public()
	if pub.ID != ident.ID || pub.Email != ident.Email || pub.Name != ident.Name {
		t.Errorf("Public() = %+v, want fields from %+v", pub, ident)
	}
}
