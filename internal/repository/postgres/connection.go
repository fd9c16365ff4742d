package postgres

import (
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Skill{},
		&domain.WantedSkill{},
		&domain.Language{},
		&domain.MentorAvailability{},
		&domain.Session{},
		&domain.Match{},
		&domain.Review{},
		&domain.Conversation{},
		&domain.ConversationParticipant{},
		&domain.Message{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		AuthSession:  NewAuthSessionRepository(db),
		Skill:        NewSkillRepository(db),
		WantedSkill:  NewWantedSkillRepository(db),
		Language:     NewLanguageRepository(db),
		Availability: NewAvailabilityRepository(db),
		Session:      NewSessionRepository(db),
		Match:        NewMatchRepository(db),
		Review:       NewReviewRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
	}
}
