package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Guest").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, upcomingOnly bool) ([]*domain.Session, error) {
	q := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Guest").
		Where("host_id = ? OR guest_id = ?", userID, userID)
	if upcomingOnly {
		q = q.Where("end_at >= ?", time.Now().UTC()).
			Where("status IN ?", []domain.SessionStatus{domain.SessionStatusPending, domain.SessionStatusScheduled})
	}

	var sessions []*domain.Session
	err := q.Order("start_at ASC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	var sessions []*domain.Session
	err := r.db.WithContext(ctx).
		Where("host_id = ? OR guest_id = ?", userID, userID).
		Where("status = ?", domain.SessionStatusCompleted).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Accept runs the whole first-accept-wins sequence in one transaction:
// scheduling the session, booking its slot and rejecting every other
// pending request on that slot either all happen or none do.
func (r *sessionRepository) Accept(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Session{}).
			Where("id = ?", session.ID).
			Update("status", domain.SessionStatusScheduled).Error
		if err != nil {
			return err
		}

		if session.AvailabilityID == nil {
			return nil
		}

		err = tx.Model(&domain.MentorAvailability{}).
			Where("id = ?", *session.AvailabilityID).
			Update("is_booked", true).Error
		if err != nil {
			return err
		}

		return tx.Model(&domain.Session{}).
			Where("availability_id = ? AND status = ? AND id <> ?",
				*session.AvailabilityID, domain.SessionStatusPending, session.ID).
			Update("status", domain.SessionStatusRejected).Error
	})
}

func (r *sessionRepository) CompletePastScheduled(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("status = ? AND end_at < ?", domain.SessionStatusScheduled, now).
		Update("status", domain.SessionStatusCompleted)
	return res.RowsAffected, res.Error
}
