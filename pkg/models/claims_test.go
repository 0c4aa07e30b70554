package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserInfoFromClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	exp := now.Add(time.Hour)

	info, err := UserInfoFromClaims(jwt.MapClaims{
		"sub":   "c1d2-e3f4",
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"exp":   float64(exp.Unix()),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, UserInfo{
		UserID:          "c1d2-e3f4",
		DisplayName:     "Ada Lovelace",
		LoginExpiration: exp.Unix(),
		IsLogin:         true,
	}, info)
	assert.NoError(t, info.Validate())
}

func TestUserInfoFromClaims_DisplayNameFallback(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	exp := float64(now.Add(time.Minute).Unix())

	info, err := UserInfoFromClaims(jwt.MapClaims{"sub": "u1", "cognito:username": "ada", "email": "ada@example.com", "exp": exp}, now)
	require.NoError(t, err)
	assert.Equal(t, "ada", info.DisplayName)

	info, err = UserInfoFromClaims(jwt.MapClaims{"sub": "u1", "email": "ada@example.com", "exp": exp}, now)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", info.DisplayName)

	info, err = UserInfoFromClaims(jwt.MapClaims{"sub": "u1", "name": "  ", "exp": exp}, now)
	require.NoError(t, err)
	assert.Equal(t, "u1", info.DisplayName)
}

func TestUserInfoFromClaims_ExpiredToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	info, err := UserInfoFromClaims(jwt.MapClaims{
		"sub": "u1",
		"exp": float64(now.Add(-time.Second).Unix()),
	}, now)
	require.NoError(t, err)
	assert.False(t, info.IsLogin)
	assert.Equal(t, "u1", info.UserID)
}

func TestUserInfoFromClaims_MissingClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	_, err := UserInfoFromClaims(jwt.MapClaims{"exp": float64(now.Unix() + 60)}, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = UserInfoFromClaims(jwt.MapClaims{"sub": "u1"}, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = UserInfoFromClaims(jwt.MapClaims{"sub": 42, "exp": float64(now.Unix() + 60)}, now)
	assert.Error(t, err)
}
