package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type wantedSkillRepository struct {
	db *gorm.DB
}

func NewWantedSkillRepository(db *gorm.DB) *wantedSkillRepository {
	return &wantedSkillRepository{db: db}
}

func (r *wantedSkillRepository) Create(ctx context.Context, skill *domain.WantedSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *wantedSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WantedSkill, error) {
	var skill domain.WantedSkill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *wantedSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.WantedSkill{}, "id = ?", id).Error
}

func (r *wantedSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WantedSkill, error) {
	var skills []*domain.WantedSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}
