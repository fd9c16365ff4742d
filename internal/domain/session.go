package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusRejected  SessionStatus = "rejected"
)

// sessionTransitions is the session lifecycle. completed, cancelled and
// rejected are terminal.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:   {SessionStatusScheduled, SessionStatusRejected, SessionStatusCancelled},
	SessionStatusScheduled: {SessionStatusCompleted, SessionStatusCancelled},
}

// CanTransitionTo reports whether a session in status s may move to next.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusPending, SessionStatusScheduled, SessionStatusCompleted,
		SessionStatusCancelled, SessionStatusRejected:
		return true
	}
	return false
}

// Session is a mentoring meeting between a host (mentor) and a guest,
// optionally tied to the availability slot it was requested against.
type Session struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HostID         uuid.UUID     `json:"hostId" gorm:"type:uuid;not null;index"`
	GuestID        uuid.UUID     `json:"guestId" gorm:"type:uuid;not null;index"`
	Title          string        `json:"title" gorm:"not null"`
	Description    string        `json:"description"`
	StartAt        time.Time     `json:"startAt" gorm:"not null"`
	EndAt          time.Time     `json:"endAt" gorm:"not null"`
	Status         SessionStatus `json:"status" gorm:"not null;default:'pending'"`
	AvailabilityID *uuid.UUID    `json:"availabilityId" gorm:"type:uuid;index"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	Host         *User               `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Guest        *User               `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Availability *MentorAvailability `json:"availability,omitempty" gorm:"foreignKey:AvailabilityID"`
}

// SessionStats aggregates a user's completed sessions across both roles.
type SessionStats struct {
	CompletedCount int     `json:"completedCount"`
	TotalHours     float64 `json:"totalHours"`
}
