package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"gorm.io/gorm"
)

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *conversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Participants.User").
		First(&conversation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants p1 ON p1.conversation_id = conversations.id AND p1.user_id = ?", a).
		Joins("JOIN conversation_participants p2 ON p2.conversation_id = conversations.id AND p2.user_id = ?", b).
		Preload("Participants").
		Preload("Participants.User").
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	var conversations []*domain.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", userID).
		Preload("Participants").
		Preload("Participants.User").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// Touch bumps updated_at so the conversation list sorts by last activity.
func (r *conversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
