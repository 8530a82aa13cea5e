package predictor

// AdHocRequest carries a caller-supplied feature set for a one-off
// prediction. Omitted features default to zero rather than failing,
// so sparse payloads still predict.
type AdHocRequest struct {
	SaleDate string `json:"sale_date" validate:"required,datetime=2006-01-02"`

	SalesLag1  float64 `json:"sales_lag_1"`
	SalesLag2  float64 `json:"sales_lag_2"`
	SalesLag3  float64 `json:"sales_lag_3"`
	SalesLag7  float64 `json:"sales_lag_7"`
	SalesLag14 float64 `json:"sales_lag_14"`
	SalesLag30 float64 `json:"sales_lag_30"`

	QuantityLag1 float64 `json:"quantity_lag_1"`
	QuantityLag7 float64 `json:"quantity_lag_7"`
	InvoicesLag1 float64 `json:"invoices_lag_1"`
	InvoicesLag7 float64 `json:"invoices_lag_7"`
	DiscountLag1 float64 `json:"discount_lag_1"`
	DiscountLag7 float64 `json:"discount_lag_7"`

	RollingMeanSales7  float64 `json:"rolling_mean_sales_7"`
	RollingStdSales7   float64 `json:"rolling_std_sales_7"`
	RollingMaxSales7   float64 `json:"rolling_max_sales_7"`
	RollingMinSales7   float64 `json:"rolling_min_sales_7"`
	RollingMeanSales14 float64 `json:"rolling_mean_sales_14"`
	RollingStdSales14  float64 `json:"rolling_std_sales_14"`
	RollingMaxSales14  float64 `json:"rolling_max_sales_14"`
	RollingMinSales14  float64 `json:"rolling_min_sales_14"`
	RollingMeanSales30 float64 `json:"rolling_mean_sales_30"`
	RollingStdSales30  float64 `json:"rolling_std_sales_30"`
	RollingMaxSales30  float64 `json:"rolling_max_sales_30"`
	RollingMinSales30  float64 `json:"rolling_min_sales_30"`

	RollingMeanQuantity7  float64 `json:"rolling_mean_quantity_7"`
	RollingStdQuantity7   float64 `json:"rolling_std_quantity_7"`
	RollingMeanQuantity14 float64 `json:"rolling_mean_quantity_14"`
	RollingStdQuantity14  float64 `json:"rolling_std_quantity_14"`
	RollingMeanInvoices7  float64 `json:"rolling_mean_invoices_7"`
	RollingStdInvoices7   float64 `json:"rolling_std_invoices_7"`
	RollingMeanInvoices14 float64 `json:"rolling_mean_invoices_14"`
	RollingStdInvoices14  float64 `json:"rolling_std_invoices_14"`

	WeeklyAvgSales  float64 `json:"weekly_avg_sales"`
	SalesChangePct  float64 `json:"sales_change_pct"`
	MonthlyAvgSales float64 `json:"monthly_avg_sales"`
	DayOfWeekAvg    float64 `json:"day_of_week_avg"`
}

// featureValues maps every non-calendar feature to its supplied value.
func (r *AdHocRequest) featureValues() map[string]float64 {
	return map[string]float64{
		"sales_lag_1":  r.SalesLag1,
		"sales_lag_2":  r.SalesLag2,
		"sales_lag_3":  r.SalesLag3,
		"sales_lag_7":  r.SalesLag7,
		"sales_lag_14": r.SalesLag14,
		"sales_lag_30": r.SalesLag30,

		"quantity_lag_1": r.QuantityLag1,
		"quantity_lag_7": r.QuantityLag7,
		"invoices_lag_1": r.InvoicesLag1,
		"invoices_lag_7": r.InvoicesLag7,
		"discount_lag_1": r.DiscountLag1,
		"discount_lag_7": r.DiscountLag7,

		"rolling_mean_sales_7":  r.RollingMeanSales7,
		"rolling_std_sales_7":   r.RollingStdSales7,
		"rolling_max_sales_7":   r.RollingMaxSales7,
		"rolling_min_sales_7":   r.RollingMinSales7,
		"rolling_mean_sales_14": r.RollingMeanSales14,
		"rolling_std_sales_14":  r.RollingStdSales14,
		"rolling_max_sales_14":  r.RollingMaxSales14,
		"rolling_min_sales_14":  r.RollingMinSales14,
		"rolling_mean_sales_30": r.RollingMeanSales30,
		"rolling_std_sales_30":  r.RollingStdSales30,
		"rolling_max_sales_30":  r.RollingMaxSales30,
		"rolling_min_sales_30":  r.RollingMinSales30,

		"rolling_mean_quantity_7":  r.RollingMeanQuantity7,
		"rolling_std_quantity_7":   r.RollingStdQuantity7,
		"rolling_mean_quantity_14": r.RollingMeanQuantity14,
		"rolling_std_quantity_14":  r.RollingStdQuantity14,
		"rolling_mean_invoices_7":  r.RollingMeanInvoices7,
		"rolling_std_invoices_7":   r.RollingStdInvoices7,
		"rolling_mean_invoices_14": r.RollingMeanInvoices14,
		"rolling_std_invoices_14":  r.RollingStdInvoices14,

		"weekly_avg_sales":  r.WeeklyAvgSales,
		"sales_change_pct":  r.SalesChangePct,
		"monthly_avg_sales": r.MonthlyAvgSales,
		"day_of_week_avg":   r.DayOfWeekAvg,
	}
}

// AdHocPrediction is the outcome of a caller-supplied prediction.
type AdHocPrediction struct {
	PredictedSales float64 `json:"predicted_sales"`
	SaleDate       string  `json:"sale_date"`
	TargetDate     string  `json:"target_date"`
	FeaturesUsed   int     `json:"features_used"`
}
