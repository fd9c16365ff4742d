package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type AuthSessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Skill, error)
	Update(ctx context.Context, skill *domain.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Skill, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type WantedSkillRepository interface {
	Create(ctx context.Context, skill *domain.WantedSkill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WantedSkill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WantedSkill, error)
}

type LanguageRepository interface {
	Create(ctx context.Context, language *domain.Language) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Language, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *domain.MentorAvailability) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorAvailability, error)
	// ListFutureByMentor returns slots on or after today ordered by
	// (date, start_time), excluding booked ones unless includeBooked.
	ListFutureByMentor(ctx context.Context, mentorID uuid.UUID, includeBooked bool) ([]*domain.MentorAvailability, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetBooked(ctx context.Context, id uuid.UUID, booked bool) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	ListByUser(ctx context.Context, userID uuid.UUID, upcomingOnly bool) ([]*domain.Session, error)
	ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	// Accept atomically schedules the session, books its slot and rejects
	// every other pending session referencing the same slot.
	Accept(ctx context.Context, session *domain.Session) error
	// CompletePastScheduled flips scheduled sessions whose end time has
	// passed to completed and returns how many rows changed.
	CompletePastScheduled(ctx context.Context, now time.Time) (int64, error)
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	Update(ctx context.Context, match *domain.Match) error
	GetBySenderReceiverSkill(ctx context.Context, senderID, receiverID uuid.UUID, skill string) (*domain.Match, error)
	GetPending(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.Match, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error)
	HasAccepted(ctx context.Context, a, b uuid.UUID) (bool, error)
	// PotentialPartners returns users who teach any skill userID wants to
	// learn, excluding userID and anyone already matched with them.
	PotentialPartners(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.User, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Exists(ctx context.Context, authorID, targetID uuid.UUID) (bool, error)
	ListByTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.Review, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error)
	Latest(ctx context.Context, conversationID uuid.UUID) (*domain.Message, error)
}

type Repositories struct {
	User         UserRepository
	AuthSession  AuthSessionRepository
	Skill        SkillRepository
	WantedSkill  WantedSkillRepository
	Language     LanguageRepository
	Availability AvailabilityRepository
	Session      SessionRepository
	Match        MatchRepository
	Review       ReviewRepository
	Conversation ConversationRepository
	Message      MessageRepository
}
