package service_test

import (
	"context"
	"testing"

	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository/postgres"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	reviewService := service.NewReviewService(repos.Review)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	target, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := reviewService.Create(ctx, author.ID, target.ID, 0, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating)

		_, err = reviewService.Create(ctx, author.ID, target.ID, 6, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})

	t.Run("creates a review", func(t *testing.T) {
		review, err := reviewService.Create(ctx, author.ID, target.ID, 5, "Great mentor")
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, author.ID, review.AuthorID)
		assert.Equal(t, target.ID, review.TargetID)
	})

	t.Run("one review per pair", func(t *testing.T) {
		_, err := reviewService.Create(ctx, author.ID, target.ID, 3, "Changed my mind")
		assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
	})

	t.Run("the reverse direction is a separate pair", func(t *testing.T) {
		_, err := reviewService.Create(ctx, target.ID, author.ID, 4, "Good student")
		require.NoError(t, err)
	})
}

func TestReviewService_ListForTarget(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	reviewService := service.NewReviewService(repos.Review)
	ctx := context.Background()

	target, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	a, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	b, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := reviewService.Create(ctx, a.ID, target.ID, 5, "")
	require.NoError(t, err)
	_, err = reviewService.Create(ctx, b.ID, target.ID, 2, "")
	require.NoError(t, err)

	reviews, err := reviewService.ListForTarget(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 3.5, service.AverageRating(reviews))
}

func TestAverageRating_Empty(t *testing.T) {
	assert.Equal(t, 0.0, service.AverageRating(nil))
}
