package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleMentor  UserRole = "mentor"
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DisplayName  string         `json:"displayName" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         UserRole       `json:"role" gorm:"not null;default:'user'"`
	Name         string         `json:"name"`
	Bio          string         `json:"bio"`
	City         string         `json:"city"`
	Title        string         `json:"title"`
	ImageURL     string         `json:"imageUrl"`
	ImageAssetID string         `json:"-"`
	Interests    datatypes.JSON `json:"interests"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
