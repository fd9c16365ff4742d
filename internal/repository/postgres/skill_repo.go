package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *skillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *skillRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *domain.Skill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *skillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Skill{}, "id = ?", id).Error
}

func (r *skillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Skill, error) {
	var skills []*domain.Skill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Skill{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
