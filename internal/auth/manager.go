package auth

import (
	"errors"
	"time"

	"finance-dashboard/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and verifies access tokens.
//
// Access tokens are stateless HS256 JWTs carrying the user's email as
// subject. Refresh tokens are NOT signed tokens; they are opaque values
// owned by internal/session, which is the only place revocation can work.
type Manager struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Manager{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.JWTIssuer,
		audience:  cfg.JWTAudience,
		accessTTL: cfg.AccessTokenTTL,
	}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

/* ===================== ISSUE ===================== */

// IssueAccessToken mints a short-lived access token for subject (user email).
func (m *Manager) IssueAccessToken(now time.Time, subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		Audience:  audienceOrNil(m.audience),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		ID:        uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

/* ===================== VERIFY ===================== */

// Verify returns the token subject when the signature is valid and the token
// has not expired at now. Signature comparison is constant-time inside the
// jwt library. Any failure collapses to a single error; callers must not
// distinguish signature failures from expiry in responses.
func (m *Manager) Verify(tokenString string, now time.Time) (string, error) {
	var claims jwt.RegisteredClaims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second), // clock skew tolerance
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(30 * time.Second),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	validator := jwt.NewValidator(opts...)
	if err := validator.Validate(claims); err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("subject missing")
	}
	return claims.Subject, nil
}

// IsValidFor reports whether tokenString is a valid access token whose
// subject equals expectedSubject.
func (m *Manager) IsValidFor(tokenString, expectedSubject string, now time.Time) bool {
	sub, err := m.Verify(tokenString, now)
	return err == nil && sub == expectedSubject
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
