package auth

import (
	"testing"
	"time"

	"finance-dashboard/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:      "secret",
		JWTIssuer:      "finance-dashboard",
		AccessTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t)

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.IssueAccessToken(now, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected a token string")
	}

	sub, err := m.Verify(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice@example.com" {
		t.Fatalf("unexpected subject: %q", sub)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t)

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.IssueAccessToken(now, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Past the TTL plus the 30s leeway.
	if _, err := m.Verify(tok, now.Add(time.Hour+time.Minute)); err == nil {
		t.Fatalf("expected expiry rejection")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newTestManager(t)

	now := time.Now()
	tok, err := m.IssueAccessToken(now, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := m.Verify(tampered, now); err == nil {
		t.Fatalf("expected signature rejection")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(config.AuthConfig{JWTSecret: "another-secret", AccessTokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Now()
	tok, err := other.IssueAccessToken(now, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(tok, now); err == nil {
		t.Fatalf("expected rejection of token signed with a different key")
	}
}

func TestIsValidFor(t *testing.T) {
	m := newTestManager(t)

	now := time.Now()
	tok, err := m.IssueAccessToken(now, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !m.IsValidFor(tok, "alice@example.com", now) {
		t.Fatalf("expected token to be valid for its own subject")
	}
	if m.IsValidFor(tok, "bob@example.com", now) {
		t.Fatalf("token must not validate for a different subject")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(config.AuthConfig{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
