package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oalhaj/salescast-backend/internal/series"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/oalhaj/salescast-backend/pkg/logger"
)

const (
	dateLayout    = "2006-01-02"
	DefaultRecent = 30
	trailingWeeks = 12
)

// Service aggregates the loaded sales history for dashboard views.
type Service struct {
	series *series.Holder
	logger *logger.Logger
}

func NewService(holder *series.Holder, log *logger.Logger) *Service {
	return &Service{series: holder, logger: log}
}

// Stats summarizes one numeric column of the history.
type Stats struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// Summary describes the full loaded history.
type Summary struct {
	TotalRecords int    `json:"total_records"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Sales        Stats  `json:"sales"`
	Quantity     Stats  `json:"quantity"`
	Invoices     Stats  `json:"invoices"`
}

// DayRecord is the transport form of one historical day.
type DayRecord struct {
	SaleDate      string  `json:"sale_date"`
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity int64   `json:"total_quantity"`
	InvoicesCount int64   `json:"invoices_count"`
	TotalDiscount float64 `json:"total_discount"`
}

// PeriodAggregate is one month or ISO week of summed activity.
type PeriodAggregate struct {
	Period        string  `json:"period"`
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity int64   `json:"total_quantity"`
	InvoicesCount int64   `json:"invoices_count"`
	Days          int     `json:"days"`
}

// Trends carries monthly aggregates over the whole span and weekly
// aggregates for the trailing twelve ISO weeks.
type Trends struct {
	Monthly []PeriodAggregate `json:"monthly"`
	Weekly  []PeriodAggregate `json:"weekly"`
}

func (s *Service) current() (*series.Series, error) {
	cur := s.series.Load()
	if cur.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotInitialized, "no sales history loaded")
	}
	return cur, nil
}

// Summary reports record counts, date coverage and per-column stats.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	cur, err := s.current()
	if err != nil {
		return nil, err
	}
	records := cur.Records()

	out := &Summary{
		TotalRecords: len(records),
		StartDate:    records[0].Date.Format(dateLayout),
		EndDate:      records[len(records)-1].Date.Format(dateLayout),
	}
	out.Sales = columnStats(records, func(r series.DailyRecord) float64 { return r.TotalAmount })
	out.Quantity = columnStats(records, func(r series.DailyRecord) float64 { return float64(r.TotalQuantity) })
	out.Invoices = columnStats(records, func(r series.DailyRecord) float64 { return float64(r.InvoicesCount) })
	return out, nil
}

// columnStats sums through decimal so money totals do not accumulate
// float drift over long histories.
func columnStats(records []series.DailyRecord, pick func(series.DailyRecord) float64) Stats {
	sum := decimal.Zero
	max := pick(records[0])
	min := max
	for _, r := range records {
		v := pick(r)
		sum = sum.Add(decimal.NewFromFloat(v))
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	total, _ := sum.Round(2).Float64()
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(records)))).Round(2).Float64()
	return Stats{Total: total, Average: avg, Max: max, Min: min}
}

// Recent returns the last n days, oldest first. Non-positive n falls
// back to the default window.
func (s *Service) Recent(ctx context.Context, n int) ([]DayRecord, error) {
	cur, err := s.current()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultRecent
	}
	tail := cur.Tail(n)
	out := make([]DayRecord, 0, len(tail))
	for _, r := range tail {
		out = append(out, DayRecord{
			SaleDate:      r.Date.Format(dateLayout),
			TotalAmount:   r.TotalAmount,
			TotalQuantity: r.TotalQuantity,
			InvoicesCount: r.InvoicesCount,
			TotalDiscount: r.TotalDiscount,
		})
	}
	return out, nil
}

// Trends aggregates the history by calendar month across the whole
// span and by ISO week for the trailing twelve weeks.
func (s *Service) Trends(ctx context.Context) (*Trends, error) {
	cur, err := s.current()
	if err != nil {
		return nil, err
	}
	records := cur.Records()
	last := records[len(records)-1].Date
	weeklyCutoff := last.AddDate(0, 0, -7*trailingWeeks)

	monthly := aggregate(records, nil, func(t time.Time) string {
		return t.Format("2006-01")
	})
	weekly := aggregate(records, func(t time.Time) bool {
		return t.After(weeklyCutoff)
	}, func(t time.Time) string {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	})
	return &Trends{Monthly: monthly, Weekly: weekly}, nil
}

// aggregate groups the (already sorted) records by label, preserving
// first-seen order so periods come out chronologically.
func aggregate(records []series.DailyRecord, keep func(time.Time) bool, label func(time.Time) string) []PeriodAggregate {
	index := make(map[string]int)
	var out []PeriodAggregate
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		if keep != nil && !keep(r.Date) {
			continue
		}
		key := label(r.Date)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, PeriodAggregate{Period: key})
			sums[key] = decimal.Zero
		}
		sums[key] = sums[key].Add(decimal.NewFromFloat(r.TotalAmount))
		out[i].TotalQuantity += r.TotalQuantity
		out[i].InvoicesCount += r.InvoicesCount
		out[i].Days++
	}
	for i := range out {
		total, _ := sums[out[i].Period].Round(2).Float64()
		out[i].TotalAmount = total
	}
	return out
}
