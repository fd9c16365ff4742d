package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *availabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Create(ctx context.Context, slot *domain.MentorAvailability) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *availabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorAvailability, error) {
	var slot domain.MentorAvailability
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *availabilityRepository) ListFutureByMentor(ctx context.Context, mentorID uuid.UUID, includeBooked bool) ([]*domain.MentorAvailability, error) {
	today := time.Now().UTC().Format("2006-01-02")

	q := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Where("date >= ?", today)
	if !includeBooked {
		q = q.Where("is_booked = ?", false)
	}

	var slots []*domain.MentorAvailability
	err := q.Order("date ASC, start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MentorAvailability{}, "id = ?", id).Error
}

func (r *availabilityRepository) SetBooked(ctx context.Context, id uuid.UUID, booked bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.MentorAvailability{}).
		Where("id = ?", id).
		Update("is_booked", booked).Error
}
