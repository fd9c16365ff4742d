package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
	role        domain.UserRole
	name        string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
		role:        domain.RoleUser,
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// WithName sets the full name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Name:         b.name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
		"name":        b.name,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
		Role:        domain.UserRole(authResp.User.Role),
	}

	return user, authResp.AccessToken
}

// SlotBuilder creates mentor availability slots with a builder pattern
type SlotBuilder struct {
	mentor    *domain.User
	date      time.Time
	startTime string
	endTime   string
	isBooked  bool
}

// NewSlotBuilder creates a new SlotBuilder with default values: a one
// hour slot tomorrow afternoon.
func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		date:      time.Now().UTC().AddDate(0, 0, 1),
		startTime: "14:00",
		endTime:   "15:00",
	}
}

// WithMentor sets the slot owner
func (b *SlotBuilder) WithMentor(user *domain.User) *SlotBuilder {
	b.mentor = user
	return b
}

// WithDate sets the slot date
func (b *SlotBuilder) WithDate(date time.Time) *SlotBuilder {
	b.date = date
	return b
}

// WithTimes sets the start and end wall-clock times
func (b *SlotBuilder) WithTimes(start, end string) *SlotBuilder {
	b.startTime = start
	b.endTime = end
	return b
}

// Booked marks the slot as already booked
func (b *SlotBuilder) Booked() *SlotBuilder {
	b.isBooked = true
	return b
}

// Build creates the slot in the database
func (b *SlotBuilder) Build(t *testing.T, db *gorm.DB) *domain.MentorAvailability {
	t.Helper()

	if b.mentor == nil {
		user, _ := NewUserBuilder().WithRole(domain.RoleMentor).Build(t, db)
		b.mentor = user
	}

	slot := &domain.MentorAvailability{
		ID:        uuid.New(),
		MentorID:  b.mentor.ID,
		Date:      datatypes.Date(b.date),
		StartTime: b.startTime,
		EndTime:   b.endTime,
		IsBooked:  b.isBooked,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}

	return slot
}

// SessionBuilder creates sessions with a builder pattern
type SessionBuilder struct {
	host           *domain.User
	guest          *domain.User
	title          string
	startAt        time.Time
	endAt          time.Time
	status         domain.SessionStatus
	availabilityID *uuid.UUID
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder() *SessionBuilder {
	start := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Hour)
	return &SessionBuilder{
		title:   "Test session",
		startAt: start,
		endAt:   start.Add(time.Hour),
		status:  domain.SessionStatusPending,
	}
}

// WithHost sets the session host
func (b *SessionBuilder) WithHost(user *domain.User) *SessionBuilder {
	b.host = user
	return b
}

// WithGuest sets the session guest
func (b *SessionBuilder) WithGuest(user *domain.User) *SessionBuilder {
	b.guest = user
	return b
}

// WithTimes sets the session start and end
func (b *SessionBuilder) WithTimes(start, end time.Time) *SessionBuilder {
	b.startAt = start
	b.endAt = end
	return b
}

// WithStatus sets the session status
func (b *SessionBuilder) WithStatus(status domain.SessionStatus) *SessionBuilder {
	b.status = status
	return b
}

// WithSlot ties the session to an availability slot
func (b *SessionBuilder) WithSlot(slot *domain.MentorAvailability) *SessionBuilder {
	id := slot.ID
	b.availabilityID = &id
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	if b.host == nil {
		user, _ := NewUserBuilder().WithRole(domain.RoleMentor).Build(t, db)
		b.host = user
	}
	if b.guest == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.guest = user
	}

	session := &domain.Session{
		ID:             uuid.New(),
		HostID:         b.host.ID,
		GuestID:        b.guest.ID,
		Title:          b.title,
		StartAt:        b.startAt,
		EndAt:          b.endAt,
		Status:         b.status,
		AvailabilityID: b.availabilityID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// SeedSkill gives a user a teachable skill directly in the database
func SeedSkill(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Skill {
	t.Helper()

	skill := &domain.Skill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Level:  "advanced",
	}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("failed to create skill: %v", err)
	}
	return skill
}

// SeedWantedSkill gives a user a wanted skill directly in the database
func SeedWantedSkill(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.WantedSkill {
	t.Helper()

	wanted := &domain.WantedSkill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	if err := db.Create(wanted).Error; err != nil {
		t.Fatalf("failed to create wanted skill: %v", err)
	}
	return wanted
}

// SeedMatch creates a match between two users directly in the database
func SeedMatch(t *testing.T, db *gorm.DB, senderID, receiverID uuid.UUID, status domain.MatchStatus) *domain.Match {
	t.Helper()

	match := &domain.Match{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Skill:      "Go",
		Status:     status,
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
