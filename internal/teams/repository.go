package teams

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	Count(ctx context.Context) (int64, error)
	// Replace swaps the whole list in one transaction
	Replace(ctx context.Context, names []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).Order("position ASC").Find(&teams).Error
	return teams, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Team{}).Count(&count).Error
	return count, err
}

func (r *repository) Replace(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Team{}).Error; err != nil {
			return err
		}

		if len(names) == 0 {
			return nil
		}

		teams := make([]Team, 0, len(names))
		for i, name := range names {
			teams = append(teams, Team{Name: name, Position: i})
		}
		return tx.Create(&teams).Error
	})
}
