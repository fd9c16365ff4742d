package domain

import (
	"time"

	"github.com/google/uuid"
)

// Skill is something a user can teach. Creating a user's first skill
// promotes their role to mentor.
type Skill struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// WantedSkill is something a user wants to learn.
type WantedSkill struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

type Language struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}
