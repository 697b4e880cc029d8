package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/config"
	"finance-dashboard/internal/finance"
	"finance-dashboard/internal/registration"
	"finance-dashboard/internal/reporting"
	"finance-dashboard/internal/session"
	"finance-dashboard/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fixture struct {
	router   *gin.Engine
	users    *user.MemoryStore
	sessions *session.MemoryStore
	tokens   *registration.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := auth.NewManager(config.AuthConfig{
		JWTSecret:      "test-secret-test-secret-test-secret",
		JWTIssuer:      "finance-dashboard",
		AccessTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	users := user.NewMemoryStore()
	userSvc := user.NewService(users)
	sessions := session.NewMemoryStore(7 * 24 * time.Hour)
	sessionSvc := session.NewService(userSvc, mgr, sessions, nil)
	regTokens := registration.NewMemoryStore(15 * time.Minute)
	regSvc := registration.NewService(users, regTokens, nil, nil)
	financeSvc := finance.NewService(finance.NewMemoryRepo())
	reportSvc := reporting.NewService(reporting.NewMemoryRepo(), nil, 0)

	h := Handlers{
		Sessions:     sessionSvc,
		Registration: regSvc,
		Finance:      financeSvc,
		Reports:      reportSvc,
	}

	public := auth.NewPathMatcher([]string{"/healthz", "/api/v1/auth/**"})
	r := gin.New()
	r.Use(auth.Gate(mgr, userSvc, public))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	v1 := r.Group("/api/v1")
	{
		ag := v1.Group("/auth")
		ag.POST("/login", h.Login)
		ag.POST("/refresh", h.Refresh)
		ag.POST("/logout", h.Logout)
		ag.POST("/register", h.Register)
		ag.GET("/confirm", h.Confirm)

		v1.POST("/income", h.AddIncome)
		v1.GET("/income", h.ListIncome)
		v1.GET("/reports/monthly", h.MonthlyReport)
	}

	return &fixture{router: r, users: users, sessions: sessions, tokens: regTokens}
}

func (f *fixture) seedUser(t *testing.T, email, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	err = f.users.Create(context.Background(), user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
		Enabled:      true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodePair(t *testing.T, w *httptest.ResponseRecorder) session.TokenPair {
	t.Helper()
	var pair session.TokenPair
	if err := json.Unmarshal(w.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode pair: %v (%s)", err, w.Body.String())
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete pair: %s", w.Body.String())
	}
	return pair
}

func TestLoginRefreshFlow(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	// login
	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	first := decodePair(t, w)

	// access token opens a protected route
	w = f.do(http.MethodGet, "/api/v1/income", first.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("protected with token = %d: %s", w.Code, w.Body.String())
	}

	// refresh rotates
	w = f.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": first.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d: %s", w.Code, w.Body.String())
	}
	second := decodePair(t, w)
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token not rotated")
	}

	// the pre-rotation value is dead
	w = f.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": first.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale refresh status = %d, want 401", w.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/income", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	want := `{"error":"Missing authentication token"}`
	if w.Body.String() != want {
		t.Fatalf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestHealthzIsPublic(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestExpiredRefreshTokenIsForbidden(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	pair := decodePair(t, w)

	f.sessions.SetClock(func() time.Time { return time.Now().Add(8 * 24 * time.Hour) })

	w = f.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": pair.RefreshToken})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", w.Code, w.Body.String())
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	pair := decodePair(t, w)

	w = f.do(http.MethodPost, "/api/v1/auth/logout", "", gin.H{"refresh_token": pair.RefreshToken})
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}
	// idempotent
	w = f.do(http.MethodPost, "/api/v1/auth/logout", "", gin.H{"refresh_token": pair.RefreshToken})
	if w.Code != http.StatusNoContent {
		t.Fatalf("second logout status = %d", w.Code)
	}
	w = f.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": pair.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout = %d, want 401", w.Code)
	}
}

func TestRegisterConfirmLogin(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "bob@example.com", "password": "s3cret-pass",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}

	// disabled until confirmed
	w = f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "bob@example.com", "password": "s3cret-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login before confirm = %d, want 401", w.Code)
	}

	tok, ok := f.tokens.TokenFor("bob@example.com")
	if !ok {
		t.Fatal("no confirmation token issued")
	}
	w = f.do(http.MethodGet, "/api/v1/auth/confirm?token="+tok, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d: %s", w.Code, w.Body.String())
	}

	w = f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "bob@example.com", "password": "s3cret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login after confirm = %d: %s", w.Code, w.Body.String())
	}
	decodePair(t, w)

	// token is single use
	w = f.do(http.MethodGet, "/api/v1/auth/confirm?token="+tok, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second confirm = %d, want 404", w.Code)
	}
}

func TestFinanceCRUDOverHTTP(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	pair := decodePair(t, w)

	w = f.do(http.MethodPost, "/api/v1/income", pair.AccessToken, gin.H{
		"amount_minor": 500000,
		"source":       "salary",
		"date":         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add income = %d: %s", w.Code, w.Body.String())
	}

	w = f.do(http.MethodGet, "/api/v1/income", pair.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list income = %d", w.Code)
	}
	var listResp struct {
		Items []finance.Income `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Items) != 1 || listResp.Items[0].AmountMinor != 500000 {
		t.Fatalf("unexpected list: %+v", listResp.Items)
	}
}

func TestMonthlyReportOverHTTP(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice@example.com", "s3cret-pass")

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	pair := decodePair(t, w)

	w = f.do(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=3", pair.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report = %d: %s", w.Code, w.Body.String())
	}
	var report reporting.MonthlyReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Year != 2024 || report.Month != 3 {
		t.Fatalf("wrong window: %+v", report)
	}

	w = f.do(http.MethodGet, "/api/v1/reports/monthly?month=13", pair.AccessToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad month = %d, want 400", w.Code)
	}
}
