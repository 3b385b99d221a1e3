package draws

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, result *DrawResult) error
	// List returns the most recent draws first
	List(ctx context.Context, limit int) ([]DrawResult, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, result *DrawResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *repository) List(ctx context.Context, limit int) ([]DrawResult, error) {
	var results []DrawResult
	err := r.db.WithContext(ctx).
		Order("drawn_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
