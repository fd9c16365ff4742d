package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// Match is a directional skill-exchange request. A pending request in the
// reverse direction is promoted to accepted instead of creating a second
// row, so a connected pair is always represented by a single match.
type Match struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SenderID   uuid.UUID   `json:"senderId" gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID   `json:"receiverId" gorm:"type:uuid;not null;index"`
	Skill      string      `json:"skill" gorm:"not null"`
	Status     MatchStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
