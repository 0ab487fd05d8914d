package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopsave/entity"
)

func TestSignAndParseToken(t *testing.T) {
	userID := uuid.New()
	token, err := SignToken(userID, entity.RoleCoopAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, string(entity.RoleCoopAdmin), claims.Scope)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := SignToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)
	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, CheckPassword(hashed, "secret123"))
	assert.False(t, CheckPassword(hashed, "secret124"))
}
