package main

import (
	"database/sql"
	"net/http"
	"time"

	"finance-dashboard/internal/httpapi"
	"finance-dashboard/internal/rbac"
	"finance-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, db *sql.DB) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// AUTH routes. These live inside the gate's public allow-list;
		// login/refresh carry their own proof.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.GET("/confirm", h.Confirm)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/refresh", h.Refresh)
			authGroup.POST("/logout", h.Logout)
		}

		// FINANCE routes (gate-protected)
		v1.POST("/income", h.AddIncome)
		v1.GET("/income", h.ListIncome)
		v1.DELETE("/income/:id", h.DeleteIncome)

		v1.POST("/expenses", h.AddExpense)
		v1.GET("/expenses", h.ListExpenses)
		v1.DELETE("/expenses/:id", h.DeleteExpense)

		v1.POST("/investments", h.AddInvestment)
		v1.GET("/investments", h.ListInvestments)
		v1.DELETE("/investments/:id", h.DeleteInvestment)

		// REPORTING routes
		v1.GET("/reports/monthly", h.MonthlyReport)

		// ADMIN routes
		admin := v1.Group("/admin")
		admin.Use(rbac.RequireRole(rbac.RoleAdmin))
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
			admin.GET("/db/health", func(c *gin.Context) {
				if err := utils.HealthCheck(c.Request.Context(), db, 3*time.Second); err != nil {
					c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
		}
	}
}
