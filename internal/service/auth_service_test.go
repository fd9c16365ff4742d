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

func newAuthService(t *testing.T) (*service.AuthService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewAuthService(repos.User, repos.AuthSession, testutil.TestConfig()), testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				DisplayName: "newuser",
				Password:    "password123",
				Name:        "New User",
			},
		},
		{
			name: "duplicate display name",
			input: service.RegisterInput{
				DisplayName: "existinguser",
				Password:    "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithDisplayName("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrDisplayNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.DisplayName, result.User.DisplayName)
			assert.Equal(t, domain.RoleUser, result.User.Role)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().WithDisplayName("loginuser").Build(t, testDB.DB)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := authService.Login(ctx, service.LoginInput{
			DisplayName: user.DisplayName,
			Password:    password,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.Login(ctx, service.LoginInput{
			DisplayName: user.DisplayName,
			Password:    "not-the-password",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := authService.Login(ctx, service.LoginInput{
			DisplayName: "nobody",
			Password:    password,
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "tokenuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), (*claims)["sub"])

	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)
}
