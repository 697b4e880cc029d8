package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/finance"
	"finance-dashboard/internal/reporting"

	"github.com/gin-gonic/gin"
)

// owner pulls the authenticated user id out of the request context. The
// gate runs before any of these handlers, so a missing identity is a
// wiring bug, not a client error; it still maps to 401.
func owner(c *gin.Context) (string, bool) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil || uid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
		return "", false
	}
	return uid, true
}

type incomeRequest struct {
	AmountMinor int64     `json:"amount_minor"`
	Source      string    `json:"source"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (h Handlers) AddIncome(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in, err := h.Finance.AddIncome(c.Request.Context(), uid, finance.Income{
		AmountMinor: req.AmountMinor,
		Source:      req.Source,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h Handlers) ListIncome(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.Finance.ListIncome(c.Request.Context(), uid)
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) DeleteIncome(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	if err := h.Finance.DeleteIncome(c.Request.Context(), uid, c.Param("id")); err != nil {
		writeFinanceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type expenseRequest struct {
	AmountMinor int64     `json:"amount_minor"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes"`
}

func (h Handlers) AddExpense(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Finance.AddExpense(c.Request.Context(), uid, finance.Expense{
		AmountMinor: req.AmountMinor,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListExpenses(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.Finance.ListExpenses(c.Request.Context(), uid)
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) DeleteExpense(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	if err := h.Finance.DeleteExpense(c.Request.Context(), uid, c.Param("id")); err != nil {
		writeFinanceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type investmentRequest struct {
	AmountMinor int64     `json:"amount_minor"`
	Type        string    `json:"type"`
	ReturnRate  float64   `json:"return_rate"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (h Handlers) AddInvestment(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	var req investmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	inv, err := h.Finance.AddInvestment(c.Request.Context(), uid, finance.Investment{
		AmountMinor: req.AmountMinor,
		Type:        req.Type,
		ReturnRate:  req.ReturnRate,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h Handlers) ListInvestments(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.Finance.ListInvestments(c.Request.Context(), uid)
	if err != nil {
		writeFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) DeleteInvestment(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	if err := h.Finance.DeleteInvestment(c.Request.Context(), uid, c.Param("id")); err != nil {
		writeFinanceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MonthlyReport returns aggregated totals for ?year=YYYY&month=M, defaulting
// to the current month.
func (h Handlers) MonthlyReport(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	now := time.Now().UTC()
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	report, err := h.Reports.Monthly(c.Request.Context(), uid, year, month)
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report window"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeFinanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, finance.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, finance.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
