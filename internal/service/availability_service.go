package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrSlotNotFound = errors.New("availability slot not found")

type AvailabilityService struct {
	slotRepo repository.AvailabilityRepository
}

func NewAvailabilityService(slotRepo repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{slotRepo: slotRepo}
}

type CreateSlotInput struct {
	MentorID  uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
}

func (s *AvailabilityService) Create(ctx context.Context, input CreateSlotInput) (*domain.MentorAvailability, error) {
	if !domain.IsValidSlotTime(input.StartTime) || !domain.IsValidSlotTime(input.EndTime) {
		return nil, domain.ErrInvalidSlotTime
	}

	duration, err := domain.SlotDuration(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if duration < domain.MinSessionMinutes {
		return nil, domain.ErrSlotTooShort
	}

	slot := &domain.MentorAvailability{
		ID:        uuid.New(),
		MentorID:  input.MentorID,
		Date:      datatypes.Date(input.Date),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		IsBooked:  false,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	return slot, nil
}

func (s *AvailabilityService) ListForMentor(ctx context.Context, mentorID uuid.UUID, includeBooked bool) ([]*domain.MentorAvailability, error) {
	return s.slotRepo.ListFutureByMentor(ctx, mentorID, includeBooked)
}

func (s *AvailabilityService) Delete(ctx context.Context, slotID, mentorID uuid.UUID) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	if slot.MentorID != mentorID {
		return domain.ErrNotSlotOwner
	}
	if slot.IsBooked {
		return domain.ErrSlotBooked
	}

	return s.slotRepo.Delete(ctx, slotID)
}

// MarkBooked and MarkAvailable are idempotent flag flips used by the
// booking service when sessions are accepted and cancelled.
func (s *AvailabilityService) MarkBooked(ctx context.Context, slotID uuid.UUID) error {
	return s.slotRepo.SetBooked(ctx, slotID, true)
}

func (s *AvailabilityService) MarkAvailable(ctx context.Context, slotID uuid.UUID) error {
	return s.slotRepo.SetBooked(ctx, slotID, false)
}
