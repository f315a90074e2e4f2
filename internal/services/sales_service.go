package services

import (
	"sort"
	"time"

	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"

	"github.com/shopspring/decimal"
)

// Rollup granularities. Anything unrecognized falls back to daily buckets,
// a defensive default rather than an error.
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
	GranularityYear  = "year"
)

// SalesBucket is one point of the dashboard series: period start and the
// summed total of every daily row falling into the period.
type SalesBucket struct {
	Period time.Time       `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

type SalesService interface {
	Today() (*models.DailySales, error)
	Rollup(granularity string, from, to *time.Time) ([]SalesBucket, error)
}

type salesService struct {
	salesRepo repository.SalesRepository
}

func NewSalesService(salesRepo repository.SalesRepository) SalesService {
	return &salesService{salesRepo: salesRepo}
}

func (s *salesService) Today() (*models.DailySales, error) {
	return s.salesRepo.GetByDate(time.Now())
}

// Rollup buckets the daily ledger by the requested granularity and returns
// (period start, total) pairs ascending by period.
func (s *salesService) Rollup(granularity string, from, to *time.Time) ([]SalesBucket, error) {
	rows, err := s.salesRepo.GetRange(from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]decimal.Decimal)
	for i := range rows {
		period := bucketStart(rows[i].Date, granularity)
		totals[period] = totals[period].Add(rows[i].Total)
	}

	buckets := make([]SalesBucket, 0, len(totals))
	for period, total := range totals {
		buckets = append(buckets, SalesBucket{Period: period, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period.Before(buckets[j].Period)
	})
	return buckets, nil
}

// bucketStart maps a calendar date to the start of its period. Weeks start
// on Monday.
func bucketStart(date time.Time, granularity string) time.Time {
	d := models.DateOf(date)
	switch granularity {
	case GranularityWeek:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYear:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}
