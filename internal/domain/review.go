package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a 1-5 rating left by one user for another. One review per
// (author, target) pair, enforced by the unique index.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_target"`
	TargetID  uuid.UUID `json:"targetId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_target"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
