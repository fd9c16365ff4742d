package service

import (
	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/config"
	"github.com/jmontes/skillswap-web/internal/repository"
)

type Services struct {
	Auth         *AuthService
	Profile      *ProfileService
	Availability *AvailabilityService
	Booking      *BookingService
	Match        *MatchService
	Review       *ReviewService
	Message      *MessageService
	Completer    *SessionCompleter
}

func NewServices(repos *repository.Repositories, c *cache.Cache, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, repos.AuthSession, cfg),
		Profile:      NewProfileService(repos.User, repos.Skill, repos.WantedSkill, repos.Language, c),
		Availability: NewAvailabilityService(repos.Availability),
		Booking:      NewBookingService(repos.Session, repos.Availability),
		Match:        NewMatchService(repos.Match, repos.User, c),
		Review:       NewReviewService(repos.Review),
		Message:      NewMessageService(repos.Conversation, repos.Message, repos.User),
		Completer:    NewSessionCompleter(repos.Session),
	}
}
