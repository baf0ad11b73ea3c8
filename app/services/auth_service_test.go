package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/auth"
)

func TestRegisterClient_CreatesProfileAndTokens(t *testing.T) {
	f := newFixture(t)
	age := 22

	res, err := f.auth.RegisterClient(f.ctx, RegisterClientInput{
		Username: "cleo",
		Email:    "cleo@example.com",
		Password: "password123",
		Age:      &age,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, res.User.Role)
	assert.NotEqual(t, "password123", res.User.Password)
	assert.NotEmpty(t, res.Tokens.Access)
	assert.NotEmpty(t, res.Tokens.Refresh)

	claims, err := auth.ValidateAccess(res.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleClient, claims.Role)

	u, err := f.users.Get(f.ctx, Caller{UserID: res.User.ID, Role: models.RoleClient}, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, u.Client)
	require.NotNil(t, u.Client.Age)
	assert.Equal(t, uint8(22), *u.Client.Age)
	assert.Nil(t, u.Owner)
}

func TestRegisterOwner_CreatesProfile(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.Get(f.ctx, f.owner, f.owner.UserID)
	require.NoError(t, err)
	assert.True(t, u.IsOwner())
	require.NotNil(t, u.Owner)
	assert.Equal(t, "Bob Motors", u.Owner.OwnerName)
	assert.Nil(t, u.Client)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.RegisterClient(f.ctx, RegisterClientInput{Username: "ann", Password: "password123"})
	requireKind(t, err, apperr.KindConflict)

	_, err = f.auth.RegisterOwner(f.ctx, RegisterOwnerInput{Username: "ann", Password: "password123", OwnerName: "x"})
	requireKind(t, err, apperr.KindConflict)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)
	assert.Equal(t, f.client.UserID, res.User.ID)
	assert.NotEmpty(t, res.Tokens.Refresh)

	_, err = f.auth.Login(f.ctx, "ann", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(f.ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 401, apperr.From(err).Status())
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)

	access, err := f.auth.Refresh(f.ctx, res.Tokens.Refresh)
	require.NoError(t, err)
	claims, err := auth.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, f.client.UserID, claims.UserID)

	_, err = f.auth.Refresh(f.ctx, res.Tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = f.auth.Refresh(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(f.ctx, res.Tokens.Refresh))

	_, err = f.auth.Refresh(f.ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// a second logout with the same token is refused
	err = f.auth.Logout(f.ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrLogout)
	assert.Equal(t, 400, apperr.From(err).Status())

	assert.ErrorIs(t, f.auth.Logout(f.ctx, res.Tokens.Access), ErrLogout)
	assert.ErrorIs(t, f.auth.Logout(f.ctx, ""), ErrLogout)
}

func TestLogout_OtherSessionsStayValid(t *testing.T) {
	f := newFixture(t)
	first, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)
	second, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(f.ctx, first.Tokens.Refresh))

	_, err = f.auth.Refresh(f.ctx, second.Tokens.Refresh)
	assert.NoError(t, err)
}

func TestPurgeExpiredTokens(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.Login(f.ctx, "ann", "password123")
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(f.ctx, res.Tokens.Refresh))

	n, err := f.auth.PurgeExpiredTokens(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.auth.now = func() time.Time { return time.Now().Add(30 * 24 * time.Hour) }
	n, err = f.auth.PurgeExpiredTokens(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
