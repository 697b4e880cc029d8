package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-dashboard/internal/rbac"
	"finance-dashboard/internal/user"
)

func newFixture(t *testing.T) (*Service, *user.MemoryStore, *MemoryStore) {
	t.Helper()
	users := user.NewMemoryStore()
	tokens := NewMemoryStore(15 * time.Minute)
	svc := NewService(users, tokens, nil, nil)
	return svc, users, tokens
}

func TestRegisterCreatesDisabledAccount(t *testing.T) {
	svc, users, _ := newFixture(t)
	ctx := context.Background()

	ct, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if ct.Token == "" {
		t.Fatal("no confirmation token issued")
	}
	if ct.UserEmail != "alice@example.com" {
		t.Fatalf("token user = %q", ct.UserEmail)
	}

	u, err := users.ByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if u.Enabled {
		t.Fatal("account must start disabled")
	}
	if u.Role != rbac.RoleUser {
		t.Fatalf("role = %q, want %q", u.Role, rbac.RoleUser)
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"bad email", "not-an-email", "s3cret-pass", ErrInvalidEmail},
		{"email with display name", "Alice <alice@example.com>", "s3cret-pass", ErrInvalidEmail},
		{"short password", "alice@example.com", "short", ErrWeakPassword},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.email, tc.password); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice@example.com", "another-pass"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestConfirmEnablesAccountOnce(t *testing.T) {
	svc, users, _ := newFixture(t)
	ctx := context.Background()

	ct, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Confirm(ctx, ct.Token); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	u, _ := users.ByEmail(ctx, "alice@example.com")
	if !u.Enabled {
		t.Fatal("account not enabled after confirmation")
	}

	// single use: a second redemption must fail
	if err := svc.Confirm(ctx, ct.Token); !errors.Is(err, ErrInvalidConfirmation) {
		t.Fatalf("second confirm: got %v, want ErrInvalidConfirmation", err)
	}
}

func TestConfirmUnknownToken(t *testing.T) {
	svc, _, _ := newFixture(t)
	if err := svc.Confirm(context.Background(), "no-such-token"); !errors.Is(err, ErrInvalidConfirmation) {
		t.Fatalf("got %v, want ErrInvalidConfirmation", err)
	}
}

func TestConfirmExpiredToken(t *testing.T) {
	svc, users, tokens := newFixture(t)
	ctx := context.Background()

	ct, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens.SetClock(func() time.Time { return time.Now().Add(16 * time.Minute) })

	if err := svc.Confirm(ctx, ct.Token); !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("got %v, want ErrConfirmationExpired", err)
	}
	u, _ := users.ByEmail(ctx, "alice@example.com")
	if u.Enabled {
		t.Fatal("expired confirmation must not enable the account")
	}
	// expired tokens are consumed on redemption
	if err := svc.Confirm(ctx, ct.Token); !errors.Is(err, ErrInvalidConfirmation) {
		t.Fatalf("retry after expiry: got %v, want ErrInvalidConfirmation", err)
	}
}

func TestReRegisterReplacesToken(t *testing.T) {
	_, _, tokens := newFixture(t)
	ctx := context.Background()

	first, err := tokens.Create(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := tokens.Create(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("token not rotated")
	}
	if _, err := tokens.Redeem(ctx, first.Token); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("old token redeemable: %v", err)
	}
	if _, err := tokens.Redeem(ctx, second.Token); err != nil {
		t.Fatalf("new token: %v", err)
	}
}
