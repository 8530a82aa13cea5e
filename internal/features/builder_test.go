package features

import (
	"math"
	"testing"
	"time"

	"github.com/oalhaj/salescast-backend/internal/series"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// gaplessSeries builds n consecutive days ending at end, with amounts
// that vary enough to give windows a real spread.
func gaplessSeries(end time.Time, n int) *series.Series {
	records := make([]series.DailyRecord, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i)
		records = append(records, series.DailyRecord{
			Date:          date,
			TotalAmount:   1000 + float64(i%7)*50,
			TotalQuantity: int64(100 + i),
			InvoicesCount: int64(10 + i%5),
			TotalDiscount: float64(i % 3),
		})
	}
	return series.New(records)
}

func mustValue(t *testing.T, v *Vector, name string) float64 {
	t.Helper()
	value, ok := v.Value(name)
	if !ok {
		t.Fatalf("feature %s is missing", name)
	}
	return value
}

func TestCalendarMonday(t *testing.T) {
	v := Calendar(day("2024-01-15")) // a Monday

	cases := map[string]float64{
		"year":           2024,
		"month":          1,
		"day":            15,
		"day_of_week":    0,
		"day_of_year":    15,
		"week_of_year":   3,
		"is_weekend":     0,
		"is_month_start": 0,
		"is_month_end":   0,
	}
	for name, want := range cases {
		if got := mustValue(t, v, name); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestCalendarSaturdayIsWeekend(t *testing.T) {
	v := Calendar(day("2024-01-20")) // a Saturday

	if got := mustValue(t, v, "day_of_week"); got != 5 {
		t.Fatalf("day_of_week = %v, want 5", got)
	}
	if got := mustValue(t, v, "is_weekend"); got != 1 {
		t.Fatalf("is_weekend = %v, want 1", got)
	}
}

func TestCalendarMonthBoundaries(t *testing.T) {
	start := Calendar(day("2024-02-01"))
	if got := mustValue(t, start, "is_month_start"); got != 1 {
		t.Fatalf("is_month_start = %v, want 1", got)
	}

	end := Calendar(day("2024-02-29"))
	if got := mustValue(t, end, "is_month_end"); got != 1 {
		t.Fatalf("is_month_end = %v, want 1", got)
	}
}

func TestBuildNextDayGaplessHistoryIsComplete(t *testing.T) {
	// The last day sits mid-month so the target's month and weekday
	// both have historical rows for the group averages.
	last := day("2024-06-15")
	s := gaplessSeries(last, 35)
	target := last.AddDate(0, 0, 1)

	v := BuildNextDay(target, s, nil)

	if v.Len() != 45 {
		t.Fatalf("built %d features, want 45", v.Len())
	}
	for _, name := range v.Names() {
		if v.IsMissing(name) {
			t.Errorf("feature %s unexpectedly missing", name)
		}
	}
}

func TestBuildNextDayLagValues(t *testing.T) {
	last := day("2024-06-30")
	s := gaplessSeries(last, 35)
	target := last.AddDate(0, 0, 1)

	v := BuildNextDay(target, s, nil)

	rec, _ := s.At(last)
	if got := mustValue(t, v, "sales_lag_1"); got != rec.TotalAmount {
		t.Fatalf("sales_lag_1 = %v, want %v", got, rec.TotalAmount)
	}
	rec7, _ := s.At(target.AddDate(0, 0, -7))
	if got := mustValue(t, v, "sales_lag_7"); got != rec7.TotalAmount {
		t.Fatalf("sales_lag_7 = %v, want %v", got, rec7.TotalAmount)
	}
}

func TestBuildNextDayGapMakesLag7Missing(t *testing.T) {
	last := day("2024-06-15")
	target := last.AddDate(0, 0, 1)
	gapDate := target.AddDate(0, 0, -7)

	var records []series.DailyRecord
	for _, rec := range gaplessSeries(last, 35).Records() {
		if rec.Date.Equal(gapDate) {
			continue
		}
		records = append(records, rec)
	}
	s := series.New(records)

	v := BuildNextDay(target, s, nil)

	wantMissing := map[string]bool{
		"sales_lag_7":    true,
		"quantity_lag_7": true,
		"invoices_lag_7": true,
		"discount_lag_7": true,
	}
	for _, name := range v.Names() {
		if wantMissing[name] != v.IsMissing(name) {
			t.Errorf("feature %s missing=%v, want %v", name, v.IsMissing(name), wantMissing[name])
		}
	}
}

func TestBuildNextDayUnseenMonthMakesMonthlyAvgMissing(t *testing.T) {
	// History ends on June 30, so a July target has no rows in its
	// month and the group average cannot be computed.
	last := day("2024-06-30")
	s := gaplessSeries(last, 35)

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)
	if !v.IsMissing("monthly_avg_sales") {
		t.Fatal("monthly_avg_sales should be missing for a month with no history")
	}
}

func TestWeeklyAvgEqualsRollingMean7(t *testing.T) {
	last := day("2024-06-30")
	s := gaplessSeries(last, 35)

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)

	weekly := mustValue(t, v, "weekly_avg_sales")
	rolling := mustValue(t, v, "rolling_mean_sales_7")
	if weekly != rolling {
		t.Fatalf("weekly_avg_sales = %v, rolling_mean_sales_7 = %v", weekly, rolling)
	}
}

func TestPartialWindowStdNeedsTwoPoints(t *testing.T) {
	last := day("2024-06-30")
	s := gaplessSeries(last, 1)

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)

	if v.IsMissing("rolling_mean_sales_7") {
		t.Fatal("rolling_mean_sales_7 should compute over a single point")
	}
	if !v.IsMissing("rolling_std_sales_7") {
		t.Fatal("rolling_std_sales_7 should be missing with one point")
	}
	if got := mustValue(t, v, "rolling_min_sales_7"); got != mustValue(t, v, "rolling_max_sales_7") {
		t.Fatalf("min %v != max %v over a single point", got, mustValue(t, v, "rolling_max_sales_7"))
	}
}

func TestRollingStdIsSampleStd(t *testing.T) {
	last := day("2024-06-30")
	s := series.New([]series.DailyRecord{
		{Date: last.AddDate(0, 0, -2), TotalAmount: 100},
		{Date: last.AddDate(0, 0, -1), TotalAmount: 200},
		{Date: last, TotalAmount: 300},
	})

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)

	want := 100.0 // sample std of {100, 200, 300}
	if got := mustValue(t, v, "rolling_std_sales_7"); math.Abs(got-want) > 1e-9 {
		t.Fatalf("rolling_std_sales_7 = %v, want %v", got, want)
	}
}

func TestSalesChangePct(t *testing.T) {
	last := day("2024-06-30")
	s := series.New([]series.DailyRecord{
		{Date: last.AddDate(0, 0, -1), TotalAmount: 100},
		{Date: last, TotalAmount: 110},
	})

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)
	if got := mustValue(t, v, "sales_change_pct"); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("sales_change_pct = %v, want 0.1", got)
	}
}

func TestSalesChangePctZeroPrevIsMissing(t *testing.T) {
	last := day("2024-06-30")
	s := series.New([]series.DailyRecord{
		{Date: last.AddDate(0, 0, -1), TotalAmount: 0},
		{Date: last, TotalAmount: 110},
	})

	v := BuildNextDay(last.AddDate(0, 0, 1), s, nil)
	if !v.IsMissing("sales_change_pct") {
		t.Fatal("sales_change_pct should be missing when the prior day is zero")
	}
}

func TestGroupAveragesUseCleanedSeries(t *testing.T) {
	last := day("2024-06-30")
	s := gaplessSeries(last, 7)

	// The cleaned series has a single July record, so the July target's
	// monthly average must come from it, not the raw history.
	cleaned := series.New([]series.DailyRecord{
		{Date: day("2023-07-10"), TotalAmount: 4242},
	})

	v := BuildNextDay(last.AddDate(0, 0, 1), s, cleaned) // target is July 1
	if got := mustValue(t, v, "monthly_avg_sales"); got != 4242 {
		t.Fatalf("monthly_avg_sales = %v, want 4242", got)
	}
}

func TestEmptySeriesMarksEverythingNonCalendarMissing(t *testing.T) {
	v := BuildNextDay(day("2024-06-30"), series.Empty(), nil)

	missing := 0
	for _, name := range v.Names() {
		if v.IsMissing(name) {
			missing++
		}
	}
	if missing != 45-9 {
		t.Fatalf("missing = %d, want %d non-calendar features", missing, 45-9)
	}
}
