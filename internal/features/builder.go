package features

import (
	"fmt"
	"time"

	"github.com/oalhaj/salescast-backend/internal/series"
)

// Lag offsets and rolling windows match the trained model's feature
// set; changing them invalidates persisted artifacts.
var (
	SalesLags     = []int{1, 2, 3, 7, 14, 30}
	MetricLags    = []int{1, 7}
	SalesWindows  = []int{7, 14, 30}
	MetricWindows = []int{7, 14}
)

// BuildNextDay constructs the raw feature row for target, which is
// expected to be the day after the last observation in s. The cleaned
// series feeds the whole-history month/weekday averages; pass nil to
// fall back to the raw series. The builder is pure and never fails:
// anything it cannot compute is marked missing, and validating
// missing-ness is the predictor's job.
func BuildNextDay(target time.Time, s *series.Series, cleaned *series.Series) *Vector {
	target = series.Day(target)
	if cleaned == nil || cleaned.Len() == 0 {
		cleaned = s
	}

	v := NewVector()
	calendarFeatures(v, target)
	lagFeatures(v, s, target)
	rollingFeatures(v, s)
	derivedFeatures(v, s, cleaned, target)
	return v
}

// Calendar builds only the date-derived features for target. Used by
// the ad-hoc prediction mode, where everything else comes from the
// caller.
func Calendar(target time.Time) *Vector {
	v := NewVector()
	calendarFeatures(v, series.Day(target))
	return v
}

func calendarFeatures(v *Vector, target time.Time) {
	v.Set("year", float64(target.Year()))
	v.Set("month", float64(target.Month()))
	v.Set("day", float64(target.Day()))

	dow := mondayWeekday(target)
	v.Set("day_of_week", float64(dow))
	v.Set("day_of_year", float64(target.YearDay()))

	_, week := target.ISOWeek()
	v.Set("week_of_year", float64(week))

	v.SetBool("is_weekend", dow == 5 || dow == 6)
	v.SetBool("is_month_start", target.Day() == 1)
	v.SetBool("is_month_end", target.AddDate(0, 0, 1).Month() != target.Month())
}

// mondayWeekday maps time.Weekday (Sunday=0) onto the trained model's
// convention of Monday=0..Sunday=6.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func lagFeatures(v *Vector, s *series.Series, target time.Time) {
	for _, lag := range SalesLags {
		name := fmt.Sprintf("sales_lag_%d", lag)
		if rec, ok := s.At(target.AddDate(0, 0, -lag)); ok {
			v.Set(name, rec.TotalAmount)
		} else {
			v.SetMissing(name)
		}
	}

	for _, lag := range MetricLags {
		rec, ok := s.At(target.AddDate(0, 0, -lag))
		setOrMissing(v, fmt.Sprintf("quantity_lag_%d", lag), float64(rec.TotalQuantity), ok)
		setOrMissing(v, fmt.Sprintf("invoices_lag_%d", lag), float64(rec.InvoicesCount), ok)
		setOrMissing(v, fmt.Sprintf("discount_lag_%d", lag), rec.TotalDiscount, ok)
	}
}

func setOrMissing(v *Vector, name string, value float64, ok bool) {
	if ok {
		v.Set(name, value)
		return
	}
	v.SetMissing(name)
}

// rollingFeatures computes trailing-window statistics anchored at the
// last observed day (the target day has no observation yet). Partial
// windows compute over whatever points exist; the sample standard
// deviation needs at least two.
func rollingFeatures(v *Vector, s *series.Series) {
	last, ok := s.LastDate()
	if !ok {
		for _, w := range SalesWindows {
			markWindowMissing(v, "sales", w, true)
		}
		for _, w := range MetricWindows {
			markWindowMissing(v, "quantity", w, false)
			markWindowMissing(v, "invoices", w, false)
		}
		return
	}

	for _, w := range SalesWindows {
		window := s.WindowEnding(last, w)
		amounts := make([]float64, len(window))
		for i, rec := range window {
			amounts[i] = rec.TotalAmount
		}
		windowStats(v, "sales", w, amounts, true)
	}

	for _, w := range MetricWindows {
		window := s.WindowEnding(last, w)
		quantities := make([]float64, len(window))
		invoices := make([]float64, len(window))
		for i, rec := range window {
			quantities[i] = float64(rec.TotalQuantity)
			invoices[i] = float64(rec.InvoicesCount)
		}
		windowStats(v, "quantity", w, quantities, false)
		windowStats(v, "invoices", w, invoices, false)
	}
}

func windowStats(v *Vector, metric string, window int, values []float64, withExtremes bool) {
	if len(values) == 0 {
		markWindowMissing(v, metric, window, withExtremes)
		return
	}

	v.Set(fmt.Sprintf("rolling_mean_%s_%d", metric, window), mean(values))

	stdName := fmt.Sprintf("rolling_std_%s_%d", metric, window)
	if len(values) >= 2 {
		v.Set(stdName, sampleStdDev(values))
	} else {
		v.SetMissing(stdName)
	}

	if withExtremes {
		v.Set(fmt.Sprintf("rolling_max_%s_%d", metric, window), maxOf(values))
		v.Set(fmt.Sprintf("rolling_min_%s_%d", metric, window), minOf(values))
	}
}

func markWindowMissing(v *Vector, metric string, window int, withExtremes bool) {
	v.SetMissing(fmt.Sprintf("rolling_mean_%s_%d", metric, window))
	v.SetMissing(fmt.Sprintf("rolling_std_%s_%d", metric, window))
	if withExtremes {
		v.SetMissing(fmt.Sprintf("rolling_max_%s_%d", metric, window))
		v.SetMissing(fmt.Sprintf("rolling_min_%s_%d", metric, window))
	}
}

func derivedFeatures(v *Vector, s *series.Series, cleaned *series.Series, target time.Time) {
	// weekly_avg_sales duplicates rolling_mean_sales_7 by definition
	// and must stay numerically identical to it.
	if val, ok := v.Value("rolling_mean_sales_7"); ok {
		v.Set("weekly_avg_sales", val)
	} else {
		v.SetMissing("weekly_avg_sales")
	}

	changePct(v, s)
	groupAverage(v, cleaned, "monthly_avg_sales", func(rec series.DailyRecord) bool {
		return rec.Date.Month() == target.Month()
	})
	groupAverage(v, cleaned, "day_of_week_avg", func(rec series.DailyRecord) bool {
		return mondayWeekday(rec.Date) == mondayWeekday(target)
	})
}

func changePct(v *Vector, s *series.Series) {
	tail := s.Tail(2)
	if len(tail) < 2 || tail[0].TotalAmount == 0 {
		v.SetMissing("sales_change_pct")
		return
	}
	prev, last := tail[0].TotalAmount, tail[1].TotalAmount
	v.Set("sales_change_pct", (last-prev)/prev)
}

// groupAverage computes the mean total_amount over every historical
// row matching the predicate, trading recency for sample size.
func groupAverage(v *Vector, s *series.Series, name string, match func(series.DailyRecord) bool) {
	sum := 0.0
	count := 0
	for _, rec := range s.Records() {
		if match(rec) {
			sum += rec.TotalAmount
			count++
		}
	}
	if count == 0 {
		v.SetMissing(name)
		return
	}
	v.Set(name, sum/float64(count))
}
