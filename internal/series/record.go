package series

import "time"

// DailyRecord is one day of aggregated sales. Dates are calendar days
// normalized to midnight UTC; the time component is never significant.
type DailyRecord struct {
	Date          time.Time `gorm:"column:sale_date;primaryKey" json:"date"`
	TotalAmount   float64   `gorm:"column:total_amount" json:"total_amount"`
	TotalQuantity int64     `gorm:"column:total_quantity" json:"total_quantity"`
	InvoicesCount int64     `gorm:"column:invoices_count" json:"invoices_count"`
	TotalDiscount float64   `gorm:"column:total_discount" json:"total_discount"`
}

// TableName maps the record onto the daily_sales table.
func (DailyRecord) TableName() string {
	return "daily_sales"
}

// Day normalizes t to midnight UTC so records index cleanly by date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
