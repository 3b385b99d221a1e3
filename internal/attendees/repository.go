package attendees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateCard(ctx context.Context, card *Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*Card, error)
	// AddStamp reports false when the card already holds the booth's stamp
	AddStamp(ctx context.Context, cardID uuid.UUID, boothID int) (bool, error)
	DeleteCard(ctx context.Context, id uuid.UUID) error
	ListCards(ctx context.Context) ([]Card, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCard(ctx context.Context, card *Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *repository) GetCard(ctx context.Context, id uuid.UUID) (*Card, error) {
	var card Card
	err := r.db.WithContext(ctx).
		Preload("Stamps", func(db *gorm.DB) *gorm.DB { return db.Order("collected_at ASC") }).
		Where("id = ?", id).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *repository) AddStamp(ctx context.Context, cardID uuid.UUID, boothID int) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}, {Name: "booth_id"}},
			DoNothing: true,
		}).
		Create(&Stamp{CardID: cardID, BoothID: boothID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&Stamp{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
}

func (r *repository) ListCards(ctx context.Context) ([]Card, error) {
	var cards []Card
	err := r.db.WithContext(ctx).Preload("Stamps").Order("created_at ASC").Find(&cards).Error
	return cards, err
}
