package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// Create enforces the rating range and the one-review-per-pair rule. The
// accepted-match requirement and the self-review block live at the HTTP
// layer, which has the match service at hand.
func (s *ReviewService) Create(ctx context.Context, authorID, targetID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	exists, err := s.reviewRepo.Exists(ctx, authorID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:       uuid.New(),
		AuthorID: authorID,
		TargetID: targetID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) ListForTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.Review, error) {
	return s.reviewRepo.ListByTarget(ctx, targetID)
}

// AverageRating returns 0 for users with no reviews.
func AverageRating(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
