package service

import (
	"testing"
	"time"

	"videoach_backend/internals/constants"
	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "access-secret"

func testUser() userModel.UserModel {
	return userModel.UserModel{ID: uuid.New(), UserName: "Jane", Role: constants.RoleManager}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	u := testUser()
	now := time.Now()
	tok, err := SignAccessToken(u, testSecret, now)
	require.NoError(t, err)

	claims, err := ParseAccessToken(tok, testSecret, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, constants.RoleManager, claims.Role)
	assert.Equal(t, "Jane", claims.UserName)
}

func TestAccessTokenRejections(t *testing.T) {
	u := testUser()
	now := time.Now()
	tok, err := SignAccessToken(u, testSecret, now)
	require.NoError(t, err)

	_, err = ParseAccessToken(tok, "other", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken(tok, testSecret, now.Add(accessTTLDefault+time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)

	// within the skew the token is still accepted
	_, err = ParseAccessToken(tok, testSecret, now.Add(accessTTLDefault+10*time.Second))
	assert.NoError(t, err)

	_, err = ParseAccessToken(tok, "", now)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	rt, err := SignRefreshToken(id, testSecret, now)
	require.NoError(t, err)

	_, err = ParseAccessToken(rt, testSecret, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	got, err := ParseRefreshToken(rt, testSecret, now)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	at, err := SignAccessToken(testUser(), testSecret, now)
	require.NoError(t, err)
	_, err = ParseRefreshToken(at, testSecret, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBlacklistTTL(t *testing.T) {
	now := time.Now()
	tok, err := SignAccessToken(testUser(), testSecret, now)
	require.NoError(t, err)

	ttl := BlacklistTTL(tok, testSecret, now)
	assert.InDelta(t, (accessTTLDefault + time.Minute).Seconds(), ttl.Seconds(), 2)

	assert.Equal(t, time.Minute, BlacklistTTL(tok, testSecret, now.Add(48*time.Hour)))
	assert.Equal(t, 2*time.Minute, BlacklistTTL("garbage", testSecret, now))
}

func TestRefreshHashDependsOnSecret(t *testing.T) {
	a := computeRefreshHash("tok", "s1")
	assert.Equal(t, a, computeRefreshHash("tok", "s1"))
	assert.NotEqual(t, a, computeRefreshHash("tok", "s2"))
}
