package service_test

import (
	"context"
	"testing"

	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository/postgres"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (*service.ProfileService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewProfileService(repos.User, repos.Skill, repos.WantedSkill, repos.Language, cache.New("", "")), testDB
}

func TestProfileService_AddSkill_PromotesToMentor(t *testing.T) {
	profileService, testDB := newProfileService(t)
	ctx := context.Background()

	t.Run("first skill promotes a plain user", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := profileService.AddSkill(ctx, user.ID, "Go", "advanced")
		require.NoError(t, err)

		profile, err := profileService.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMentor, profile.User.Role)

		// A second skill leaves the role alone.
		_, err = profileService.AddSkill(ctx, user.ID, "Rust", "intermediate")
		require.NoError(t, err)

		profile, err = profileService.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMentor, profile.User.Role)
		assert.Len(t, profile.Skills, 2)
	})

	t.Run("students are promoted too", func(t *testing.T) {
		student, _ := testutil.NewUserBuilder().WithRole(domain.RoleStudent).Build(t, testDB.DB)

		_, err := profileService.AddSkill(ctx, student.ID, "Piano", "beginner")
		require.NoError(t, err)

		profile, err := profileService.GetProfile(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMentor, profile.User.Role)
	})

	t.Run("admins keep their role", func(t *testing.T) {
		admin, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).Build(t, testDB.DB)

		_, err := profileService.AddSkill(ctx, admin.ID, "Go", "advanced")
		require.NoError(t, err)

		profile, err := profileService.GetProfile(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, profile.User.Role)
	})
}

func TestProfileService_SkillOwnership(t *testing.T) {
	profileService, testDB := newProfileService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	skill, err := profileService.AddSkill(ctx, owner.ID, "Go", "advanced")
	require.NoError(t, err)

	newName := "Golang"
	_, err = profileService.UpdateSkill(ctx, skill.ID, other.ID, &newName, nil)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	updated, err := profileService.UpdateSkill(ctx, skill.ID, owner.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	err = profileService.DeleteSkill(ctx, skill.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	require.NoError(t, profileService.DeleteSkill(ctx, skill.ID, owner.ID))

	err = profileService.DeleteSkill(ctx, skill.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrSkillNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	profileService, testDB := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	bio := "Gopher since 2015"
	city := "Madrid"
	updated, err := profileService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
		Bio:       &bio,
		City:      &city,
		Interests: []string{"hiking", "chess"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gopher since 2015", updated.Bio)
	assert.Equal(t, "Madrid", updated.City)
	assert.JSONEq(t, `["hiking","chess"]`, string(updated.Interests))

	// Untouched fields survive a partial update.
	newCity := "Sevilla"
	updated, err = profileService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{City: &newCity})
	require.NoError(t, err)
	assert.Equal(t, "Gopher since 2015", updated.Bio)
	assert.Equal(t, "Sevilla", updated.City)
}
