package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

func (r *matchRepository) GetBySenderReceiverSkill(ctx context.Context, senderID, receiverID uuid.UUID, skill string) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND skill = ?", senderID, receiverID, skill).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetPending(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, domain.MatchStatusPending).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) HasAccepted(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("status = ?", domain.MatchStatusAccepted).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

func (r *matchRepository) PotentialPartners(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.User, error) {
	wanted := r.db.Model(&domain.WantedSkill{}).
		Select("name").
		Where("user_id = ?", userID)
	sentTo := r.db.Model(&domain.Match{}).
		Select("receiver_id").
		Where("sender_id = ?", userID)
	receivedFrom := r.db.Model(&domain.Match{}).
		Select("sender_id").
		Where("receiver_id = ?", userID)

	var users []*domain.User
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Distinct("users.*").
		Joins("JOIN skills ON skills.user_id = users.id").
		Where("skills.name IN (?)", wanted).
		Where("users.id <> ?", userID).
		Where("users.id NOT IN (?)", sentTo).
		Where("users.id NOT IN (?)", receivedFrom).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
