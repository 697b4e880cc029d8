package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-dashboard/internal/auth"

	"github.com/gin-gonic/gin"
)

func newRouter(mw gin.HandlerFunc, seed *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if seed != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), *seed))
			c.Next()
		})
	}
	r.GET("/admin/ping", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r := newRouter(RequireRole(RoleAdmin), &auth.Identity{UserID: "u1", Email: "root@example.com", Role: RoleAdmin})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	r := newRouter(RequireRole(RoleAdmin), &auth.Identity{UserID: "u2", Email: "alice@example.com", Role: RoleUser})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	want := `{"error":"Insufficient permissions"}`
	if w.Body.String() != want {
		t.Fatalf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestRequireRoleWithoutIdentityIsUnauthorized(t *testing.T) {
	r := newRouter(RequireRole(RoleAdmin), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAnyRole(t *testing.T) {
	r := newRouter(RequireAnyRole(RoleUser, RoleAdmin), &auth.Identity{UserID: "u3", Email: "bob@example.com", Role: RoleUser})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestKnown(t *testing.T) {
	if !Known(RoleUser) || !Known(RoleAdmin) {
		t.Fatal("built-in roles must be known")
	}
	if Known("superuser") {
		t.Fatal("unknown role accepted")
	}
}
