// Package identity defines the durable user record and the public projection
// of it that is allowed to cross the API boundary.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Identity is a registered user's durable record. PasswordHash and
// RefreshHash are secret fields; they never leave the persistence and
// session layers.
type Identity struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	// RefreshHash is the one-way hash of the currently valid refresh
	// token, or nil when the identity has no active session.
	RefreshHash *string
}

// Public is the projection of an Identity with all secret fields stripped.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (i *Identity) Public() Public {
	return Public{
		ID:    i.ID,
		Email: i.Email,
		Name:  i.Name,
	}
}

// NewID returns a fresh identity id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed identity id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NormalizeEmail lowercases and trims an email address. Emails are stored
// and compared in normalized form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	return nil
}

// ValidatePassword enforces the registration password policy: at least 8
// characters with one lowercase letter, one number, and one symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasLower, hasNumber, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}
	if !hasSymbol {
		return errors.New("password must contain at least one symbol")
	}
	return nil
}

// ValidateRegistration runs all field checks and collects the failures.
func ValidateRegistration(email string, name string, password string) error {
	var errs []string
	if err := ValidateEmail(email); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateName(name); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidatePassword(password); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, ", "))
	}
	return nil
}
