package service

import (
	"context"
	"log"
	"time"

	"github.com/jmontes/skillswap-web/internal/repository"
)

// SessionCompleter is the cron job that flips scheduled sessions whose end
// time has passed to completed.
type SessionCompleter struct {
	sessionRepo repository.SessionRepository
}

func NewSessionCompleter(sessionRepo repository.SessionRepository) *SessionCompleter {
	return &SessionCompleter{sessionRepo: sessionRepo}
}

func (s *SessionCompleter) CompletePastSessions(ctx context.Context) (int64, error) {
	count, err := s.sessionRepo.CompletePastScheduled(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("completer: marked %d past sessions as completed", count)
	}
	return count, nil
}
