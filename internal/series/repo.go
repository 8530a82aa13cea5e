package series

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository reads daily aggregates from the daily_sales table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadAll returns every daily record ordered by date ascending.
func (r *Repository) LoadAll(ctx context.Context) (*Series, error) {
	var records []DailyRecord
	if err := r.db.WithContext(ctx).Order("sale_date ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("loading daily sales: %w", err)
	}
	return New(records), nil
}
