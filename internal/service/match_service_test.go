package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository/postgres"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchService(t *testing.T) (*service.MatchService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewMatchService(repos.Match, repos.User, cache.New("", "")), testDB
}

func TestMatchService_SendRequest(t *testing.T) {
	matchService, testDB := newMatchService(t)
	ctx := context.Background()

	alex, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bo, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("unknown receiver", func(t *testing.T) {
		_, err := matchService.SendRequest(ctx, alex.ID, uuid.New(), "Go")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("creates a pending match", func(t *testing.T) {
		match, err := matchService.SendRequest(ctx, alex.ID, bo.ID, "Go")
		require.NoError(t, err)
		assert.Equal(t, domain.MatchStatusPending, match.Status)
		assert.Equal(t, alex.ID, match.SenderID)
		assert.Equal(t, bo.ID, match.ReceiverID)
	})

	t.Run("duplicate forward request is refused", func(t *testing.T) {
		_, err := matchService.SendRequest(ctx, alex.ID, bo.ID, "Go")
		assert.ErrorIs(t, err, domain.ErrMatchExists)
	})

	t.Run("reciprocal request promotes the existing match", func(t *testing.T) {
		promoted, err := matchService.SendRequest(ctx, bo.ID, alex.ID, "Spanish")
		require.NoError(t, err)
		assert.Equal(t, domain.MatchStatusAccepted, promoted.Status)
		// Promoted in place: still the original sender/receiver row.
		assert.Equal(t, alex.ID, promoted.SenderID)
		assert.Equal(t, bo.ID, promoted.ReceiverID)

		matches, err := matchService.ListForUser(ctx, alex.ID)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func TestMatchService_Respond(t *testing.T) {
	matchService, testDB := newMatchService(t)
	ctx := context.Background()

	sender, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	receiver, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	match, err := matchService.SendRequest(ctx, sender.ID, receiver.ID, "Go")
	require.NoError(t, err)

	t.Run("only the receiver may respond", func(t *testing.T) {
		_, err := matchService.Respond(ctx, match.ID, sender.ID, true)
		assert.ErrorIs(t, err, domain.ErrNotMatchReceiver)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := matchService.Respond(ctx, uuid.New(), receiver.ID, true)
		assert.ErrorIs(t, err, service.ErrMatchNotFound)
	})

	t.Run("accept", func(t *testing.T) {
		got, err := matchService.Respond(ctx, match.ID, receiver.ID, true)
		require.NoError(t, err)
		assert.Equal(t, domain.MatchStatusAccepted, got.Status)

		accepted, err := matchService.HasAccepted(ctx, sender.ID, receiver.ID)
		require.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("responding twice fails", func(t *testing.T) {
		_, err := matchService.Respond(ctx, match.ID, receiver.ID, false)
		assert.ErrorIs(t, err, domain.ErrMatchNotPending)
	})
}

func TestMatchService_Potential(t *testing.T) {
	matchService, testDB := newMatchService(t)
	ctx := context.Background()

	learner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	goMentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	rustMentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	matchedMentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)

	testutil.SeedWantedSkill(t, testDB.DB, learner.ID, "Go")
	testutil.SeedSkill(t, testDB.DB, goMentor.ID, "Go")
	testutil.SeedSkill(t, testDB.DB, rustMentor.ID, "Rust")
	testutil.SeedSkill(t, testDB.DB, matchedMentor.ID, "Go")
	testutil.SeedMatch(t, testDB.DB, learner.ID, matchedMentor.ID, domain.MatchStatusAccepted)

	users, err := matchService.Potential(ctx, learner.ID)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, goMentor.ID, users[0].ID)
}
