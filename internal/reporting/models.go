package reporting

import "time"

// MonthlyReport aggregates one owner's finances over a calendar month.
// All amounts are minor units.
type MonthlyReport struct {
	OwnerID string `json:"-"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`

	TotalIncomeMinor     int64 `json:"total_income_minor"`
	TotalExpenseMinor    int64 `json:"total_expense_minor"`
	TotalInvestmentMinor int64 `json:"total_investment_minor"`
	// NetProfitMinor = income - expenses. Investments are tracked but not
	// subtracted; moving money into an asset is not spending it.
	NetProfitMinor int64 `json:"net_profit_minor"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Totals is the raw aggregation a Repository returns for a time window.
type Totals struct {
	IncomeMinor     int64
	ExpenseMinor    int64
	InvestmentMinor int64
}
