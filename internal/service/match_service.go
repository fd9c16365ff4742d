package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/gorm"
)

var ErrMatchNotFound = errors.New("match not found")

const (
	potentialMatchesLimit = 50
	potentialMatchesTTL   = 5 * time.Minute
)

func potentialMatchesKey(userID uuid.UUID) string {
	return fmt.Sprintf("matches:potential:%s", userID)
}

type MatchService struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	cache     *cache.Cache
}

func NewMatchService(matchRepo repository.MatchRepository, userRepo repository.UserRepository, c *cache.Cache) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		userRepo:  userRepo,
		cache:     c,
	}
}

// SendRequest creates a pending match toward receiverID. An identical
// forward request is a duplicate; a pending request in the reverse
// direction is promoted to accepted in place instead of creating a
// second row.
func (s *MatchService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID, skill string) (*domain.Match, error) {
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	forward, err := s.matchRepo.GetBySenderReceiverSkill(ctx, senderID, receiverID, skill)
	if err == nil && forward != nil {
		return nil, domain.ErrMatchExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reverse, err := s.matchRepo.GetPending(ctx, receiverID, senderID)
	if err == nil && reverse != nil {
		reverse.Status = domain.MatchStatusAccepted
		if err := s.matchRepo.Update(ctx, reverse); err != nil {
			return nil, err
		}
		s.invalidatePotential(ctx, senderID, receiverID)
		return reverse, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	match := &domain.Match{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Skill:      skill,
		Status:     domain.MatchStatusPending,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.invalidatePotential(ctx, senderID, receiverID)
	return match, nil
}

func (s *MatchService) Respond(ctx context.Context, matchID, receiverID uuid.UUID, accept bool) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.ReceiverID != receiverID {
		return nil, domain.ErrNotMatchReceiver
	}
	if match.Status != domain.MatchStatusPending {
		return nil, domain.ErrMatchNotPending
	}

	if accept {
		match.Status = domain.MatchStatusAccepted
	} else {
		match.Status = domain.MatchStatusRejected
	}
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, err
	}

	s.invalidatePotential(ctx, match.SenderID, match.ReceiverID)
	return match, nil
}

func (s *MatchService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	return s.matchRepo.ListByUser(ctx, userID)
}

// Potential returns up to 50 users teaching something userID wants to
// learn, excluding anyone already matched with them. Results are cached
// for a few minutes; the cache fails open.
func (s *MatchService) Potential(ctx context.Context, userID uuid.UUID) ([]*domain.User, error) {
	key := potentialMatchesKey(userID)

	var cached []*domain.User
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	users, err := s.matchRepo.PotentialPartners(ctx, userID, potentialMatchesLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, users, potentialMatchesTTL); err != nil {
		log.Printf("matches: failed to cache potential partners: %v", err)
	}

	return users, nil
}

// HasAccepted reports whether an accepted match exists between the two
// users in either direction. The reviews endpoint gates on this.
func (s *MatchService) HasAccepted(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.matchRepo.HasAccepted(ctx, a, b)
}

func (s *MatchService) invalidatePotential(ctx context.Context, userIDs ...uuid.UUID) {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = potentialMatchesKey(id)
	}
	_ = s.cache.Delete(ctx, keys...)
}
