package httpapi

import (
	"errors"
	"net/http"
	"time"

	"finance-dashboard/internal/finance"
	"finance-dashboard/internal/registration"
	"finance-dashboard/internal/reporting"
	"finance-dashboard/internal/session"
	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Sessions     *session.Service
	Registration *registration.Service
	Finance      *finance.Service
	Reports      *reporting.Service

	// Redis is optional; with a nil client login throttling is disabled.
	Redis           *redis.Client
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and returns an access/refresh token pair.
func (h Handlers) Login(c *gin.Context) {
	if h.Sessions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	if !h.allowLoginAttempt(c) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	pair, err := h.Sessions.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh rotates a refresh token and mints a new access token.
//
// Status mapping is part of the contract: unknown token is 401, a genuine
// but expired token is 403 so clients know re-login is the only way out.
func (h Handlers) Refresh(c *gin.Context) {
	if h.Sessions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}

	pair, err := h.Sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidRefreshToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		case errors.Is(err, session.ErrRefreshTokenExpired):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "refresh token expired, please log in again"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		}
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout revokes a refresh token. Revoking an already-absent token still
// returns 204.
func (h Handlers) Logout(c *gin.Context) {
	if h.Sessions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}
	if err := h.Sessions.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Registration ---

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Register(c *gin.Context) {
	if h.Registration == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration not configured"})
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	_, err := h.Registration.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrInvalidEmail):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		case errors.Is(err, registration.ErrWeakPassword):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		case errors.Is(err, registration.ErrEmailTaken):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	// the token travels out of band; the response only acknowledges
	c.JSON(http.StatusCreated, gin.H{"status": "confirmation pending"})
}

func (h Handlers) Confirm(c *gin.Context) {
	if h.Registration == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration not configured"})
		return
	}
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}

	if err := h.Registration.Confirm(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, registration.ErrInvalidConfirmation):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid confirmation token"})
		case errors.Is(err, registration.ErrConfirmationExpired):
			c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": "confirmation token expired, please register again"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "account enabled"})
}

func (h Handlers) allowLoginAttempt(c *gin.Context) bool {
	if h.Redis == nil || h.LoginRateLimit <= 0 || h.LoginRateWindow <= 0 {
		return true
	}
	key := "ratelimit:login:" + c.ClientIP()
	ok, err := utils.RateLimitAllow(c.Request.Context(), h.Redis, key, h.LoginRateLimit, h.LoginRateWindow)
	if err != nil {
		// throttling is best-effort; a broken Redis must not lock users out
		logger.FromGin(c).Warn("login rate limit check failed", "err", err)
		return true
	}
	return ok
}
