package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// BookingService composes the availability and session stores: it turns
// slot requests into pending sessions and resolves competing requests when
// the mentor accepts one.
type BookingService struct {
	sessionRepo repository.SessionRepository
	slotRepo    repository.AvailabilityRepository
}

func NewBookingService(sessionRepo repository.SessionRepository, slotRepo repository.AvailabilityRepository) *BookingService {
	return &BookingService{
		sessionRepo: sessionRepo,
		slotRepo:    slotRepo,
	}
}

type CreateRequestInput struct {
	MentorID        uuid.UUID
	GuestID         uuid.UUID
	AvailabilityID  uuid.UUID
	Title           string
	Description     string
	DurationMinutes int
}

// CreateRequest creates a pending session against a published slot. The
// slot is not marked booked here: several guests may hold pending requests
// on the same slot until the mentor accepts one.
func (s *BookingService) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.Session, error) {
	slot, err := s.slotRepo.GetByID(ctx, input.AvailabilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if slot.MentorID != input.MentorID {
		return nil, domain.ErrNotSlotOwner
	}
	if slot.IsBooked {
		return nil, domain.ErrSlotBooked
	}
	if input.DurationMinutes < domain.MinSessionMinutes || input.DurationMinutes%domain.SlotStepMinutes != 0 {
		return nil, domain.ErrInvalidDuration
	}

	startAt, err := slot.StartAt()
	if err != nil {
		return nil, err
	}
	slotEnd, err := slot.EndAt()
	if err != nil {
		return nil, err
	}

	endAt := startAt.Add(time.Duration(input.DurationMinutes) * time.Minute)
	if endAt.After(slotEnd) {
		return nil, domain.ErrOutsideSlot
	}

	availabilityID := slot.ID
	session := &domain.Session{
		ID:             uuid.New(),
		HostID:         input.MentorID,
		GuestID:        input.GuestID,
		Title:          input.Title,
		Description:    input.Description,
		StartAt:        startAt,
		EndAt:          endAt,
		Status:         domain.SessionStatusPending,
		AvailabilityID: &availabilityID,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

type CreateDirectInput struct {
	HostID      uuid.UUID
	GuestID     uuid.UUID
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

// CreateDirect creates a session agreed outside the slot system. It goes
// straight to scheduled.
func (s *BookingService) CreateDirect(ctx context.Context, input CreateDirectInput) (*domain.Session, error) {
	if !input.EndAt.After(input.StartAt) {
		return nil, domain.ErrInvalidDuration
	}

	session := &domain.Session{
		ID:          uuid.New(),
		HostID:      input.HostID,
		GuestID:     input.GuestID,
		Title:       input.Title,
		Description: input.Description,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Status:      domain.SessionStatusScheduled,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Accept schedules a pending session. First accept wins: the slot is
// booked and every other pending request on it is rejected, all inside a
// single transaction.
func (s *BookingService) Accept(ctx context.Context, sessionID, mentorID uuid.UUID) (*domain.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.HostID != mentorID {
		return nil, domain.ErrNotSessionHost
	}
	if !session.Status.CanTransitionTo(domain.SessionStatusScheduled) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.sessionRepo.Accept(ctx, session); err != nil {
		return nil, err
	}

	session.Status = domain.SessionStatusScheduled
	return session, nil
}

func (s *BookingService) Reject(ctx context.Context, sessionID, mentorID uuid.UUID) (*domain.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.HostID != mentorID {
		return nil, domain.ErrNotSessionHost
	}
	if !session.Status.CanTransitionTo(domain.SessionStatusRejected) {
		return nil, domain.ErrInvalidTransition
	}

	session.Status = domain.SessionStatusRejected
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Cancel may be called by either party. A cancelled session releases its
// slot back to available.
func (s *BookingService) Cancel(ctx context.Context, sessionID, userID uuid.UUID) (*domain.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.HostID != userID && session.GuestID != userID {
		return nil, domain.ErrNotSessionParty
	}
	if !session.Status.CanTransitionTo(domain.SessionStatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	session.Status = domain.SessionStatusCancelled
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	if session.AvailabilityID != nil {
		if err := s.slotRepo.SetBooked(ctx, *session.AvailabilityID, false); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (s *BookingService) Complete(ctx context.Context, sessionID, userID uuid.UUID) (*domain.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.HostID != userID && session.GuestID != userID {
		return nil, domain.ErrNotSessionParty
	}
	if !session.Status.CanTransitionTo(domain.SessionStatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	session.Status = domain.SessionStatusCompleted
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID, upcomingOnly bool) ([]*domain.Session, error) {
	return s.sessionRepo.ListByUser(ctx, userID, upcomingOnly)
}

// Stats sums completed sessions and their hours across both roles, with
// hours rounded to one decimal.
func (s *BookingService) Stats(ctx context.Context, userID uuid.UUID) (*domain.SessionStats, error) {
	sessions, err := s.sessionRepo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var hours float64
	for _, session := range sessions {
		hours += session.EndAt.Sub(session.StartAt).Hours()
	}

	return &domain.SessionStats{
		CompletedCount: len(sessions),
		TotalHours:     math.Round(hours*10) / 10,
	}, nil
}

func (s *BookingService) getSession(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
