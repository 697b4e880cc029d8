package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finance-dashboard/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting.
//
// Implementations must enforce owner filtering and should query the
// underlying finance tables directly; reporting never writes.
type Repository interface {
	Totals(ctx context.Context, ownerID string, from, to time.Time) (Totals, error)
}

// Service computes monthly reports, with a short-TTL Redis cache in front
// of the aggregation queries. The cache is best-effort: Redis being down
// degrades to querying Postgres every time, never to an error.
type Service struct {
	repo     Repository
	rdb      *redis.Client
	cacheTTL time.Duration
	clock    func() time.Time
}

func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{repo: repo, rdb: rdb, cacheTTL: cacheTTL, clock: time.Now}
}

func (s *Service) Monthly(ctx context.Context, ownerID string, year, month int) (MonthlyReport, error) {
	if ownerID == "" || year < 1970 || month < 1 || month > 12 {
		return MonthlyReport{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return MonthlyReport{}, errors.New("reporting: repository not configured")
	}

	key := fmt.Sprintf("report:monthly:%s:%04d-%02d", ownerID, year, month)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	totals, err := s.repo.Totals(ctx, ownerID, from, to)
	if err != nil {
		return MonthlyReport{}, err
	}

	out := MonthlyReport{
		OwnerID:              ownerID,
		Year:                 year,
		Month:                month,
		TotalIncomeMinor:     totals.IncomeMinor,
		TotalExpenseMinor:    totals.ExpenseMinor,
		TotalInvestmentMinor: totals.InvestmentMinor,
		NetProfitMinor:       totals.IncomeMinor - totals.ExpenseMinor,
		GeneratedAt:          s.clock().UTC(),
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

func (s *Service) cacheGet(ctx context.Context, key string) (MonthlyReport, bool) {
	if s.rdb == nil {
		return MonthlyReport{}, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.From(ctx).Debug("report cache get failed", "err", err)
		}
		return MonthlyReport{}, false
	}
	var out MonthlyReport
	if err := json.Unmarshal(raw, &out); err != nil {
		return MonthlyReport{}, false
	}
	return out, true
}

func (s *Service) cacheSet(ctx context.Context, key string, r MonthlyReport) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		logger.From(ctx).Debug("report cache set failed", "err", err)
	}
}
