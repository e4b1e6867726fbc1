package service

import (
	"testing"

	authHelper "videoach_backend/internals/features/users/auth/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCurrentPassword(t *testing.T) {
	hash, err := authHelper.HashPassword("Secret123")
	require.NoError(t, err)
	u := testUser()
	u.Password = &hash

	assert.NoError(t, checkCurrentPassword(&u, "Secret123"))
	assert.ErrorIs(t, checkCurrentPassword(&u, "secret123"), ErrWrongPassword)
}

func TestCheckCurrentPasswordRefusesProviderAccounts(t *testing.T) {
	google := "google-sub"
	u := testUser()
	u.GoogleID = &google

	assert.ErrorIs(t, checkCurrentPassword(&u, ""), ErrNoPassword)
	assert.ErrorIs(t, checkCurrentPassword(&u, "anything"), ErrNoPassword)
}
