package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
)

type MessageService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
}

func NewMessageService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *MessageService {
	return &MessageService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

// GetOrCreateConversation returns the existing conversation between the
// two users or creates one. Conversations are deduplicated per pair.
func (s *MessageService) GetOrCreateConversation(ctx context.Context, userID, otherID uuid.UUID) (*domain.Conversation, error) {
	if userID == otherID {
		return nil, ErrSelfConversation
	}

	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	conversation, err := s.conversationRepo.GetBetween(ctx, userID, otherID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = &domain.Conversation{
		ID: uuid.New(),
		Participants: []domain.ConversationParticipant{
			{UserID: userID},
			{UserID: otherID},
		},
	}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return s.conversationRepo.GetByID(ctx, conversation.ID)
}

// Send appends a message to the conversation. The caller must be a
// participant. The conversation is returned too so the transport layer
// can notify the other participants.
func (s *MessageService) Send(ctx context.Context, conversationID, senderID uuid.UUID, body string) (*domain.Message, *domain.Conversation, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrConversationNotFound
		}
		return nil, nil, err
	}

	if !conversation.HasParticipant(senderID) {
		return nil, nil, domain.ErrNotParticipant
	}

	message := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, nil, err
	}

	if err := s.conversationRepo.Touch(ctx, conversationID); err != nil {
		return nil, nil, err
	}

	return message, conversation, nil
}

// ConversationSummary pairs a conversation with its most recent message
// for list views.
type ConversationSummary struct {
	Conversation *domain.Conversation `json:"conversation"`
	LastMessage  *domain.Message      `json:"lastMessage"`
}

func (s *MessageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	conversations, err := s.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		latest, err := s.messageRepo.Latest(ctx, conversation.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		summaries = append(summaries, &ConversationSummary{
			Conversation: conversation,
			LastMessage:  latest,
		})
	}

	return summaries, nil
}

func (s *MessageService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]*domain.Message, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}

	return s.messageRepo.ListByConversation(ctx, conversationID)
}
