package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type languageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *languageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) Create(ctx context.Context, language *domain.Language) error {
	return r.db.WithContext(ctx).Create(language).Error
}

func (r *languageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	var language domain.Language
	err := r.db.WithContext(ctx).First(&language, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Language{}, "id = ?", id).Error
}

func (r *languageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Language, error) {
	var languages []*domain.Language
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&languages).Error
	if err != nil {
		return nil, err
	}
	return languages, nil
}
