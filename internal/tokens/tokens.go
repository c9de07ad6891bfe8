// Package tokens issues and validates the signed access and refresh tokens
// for the session lifecycle. Both token kinds carry the same identity claim
// set and differ only in lifetime; a refresh token is additionally gated by
// the stored refresh hash, which is the session manager's concern.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

var ErrTokenInvalid = errors.New("token invalid")

// Config holds the signing parameters, fixed at process start.
type Config struct {
	// Secret is the shared HMAC-SHA256 signing secret.
	Secret []byte
	// Issuer is set as the iss claim and validated on parse.
	Issuer string
	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token lifetime.
	RefreshTTL time.Duration
}

// Claims is the identity claim set carried by both token kinds.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single symmetric secret.
// Signing is pure CPU work; a Manager is safe for concurrent use.
type Manager struct {
	config Config
}

func NewManager(config Config) (*Manager, error) {
	if len(config.Secret) == 0 {
		return nil, errors.New("tokens: signing secret is required")
	}
	if config.AccessTTL <= 0 || config.RefreshTTL <= 0 {
		return nil, errors.New("tokens: token lifetimes must be positive")
	}
	return &Manager{config: config}, nil
}

// IssueAccess signs a short-lived access token for the given identity.
func (m *Manager) IssueAccess(pub identity.Public) (string, time.Time, error) {
	return m.issue(pub, m.config.AccessTTL)
}

// IssueRefresh signs a long-lived refresh token for the given identity.
func (m *Manager) IssueRefresh(pub identity.Public) (string, time.Time, error) {
	return m.issue(pub, m.config.RefreshTTL)
}

func (m *Manager) issue(
	pub identity.Public,
	lifetime time.Duration,
) (
	string,
	time.Time,
	error,
) {
	now := time.Now()
	expiresAt := now.Add(lifetime)
	claims := Claims{
		Email: pub.Email,
		Name:  pub.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			// a unique jti makes every issuance distinct, so rotating a
			// refresh token always changes the stored hash
			ID:        uuid.NewString(),
			Subject:   pub.ID,
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	encoded, err := token.SignedString(m.config.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %v", err)
	}
	return encoded, expiresAt, nil
}

// Parse verifies signature, expiry, and issuer, and returns the claim set.
// Tokens signed with any algorithm other than HMAC-SHA256 are rejected
// outright, including "none".
func (m *Manager) Parse(encoded string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(encoded, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
