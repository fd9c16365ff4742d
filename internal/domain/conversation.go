package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation holds the message thread between two users. Conversations
// are deduplicated per user pair by the message service.
type Conversation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Participants []ConversationParticipant `json:"participants,omitempty" gorm:"foreignKey:ConversationID"`
}

type ConversationParticipant struct {
	ConversationID uuid.UUID `json:"conversationId" gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;primary_key"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type Message struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ConversationID uuid.UUID `json:"conversationId" gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID `json:"senderId" gorm:"type:uuid;not null"`
	Body           string    `json:"body" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// OtherParticipants returns every participant except userID.
func (c *Conversation) OtherParticipants(userID uuid.UUID) []uuid.UUID {
	var others []uuid.UUID
	for _, p := range c.Participants {
		if p.UserID != userID {
			others = append(others, p.UserID)
		}
	}
	return others
}
