package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carepoint/medibill/internal/user"
)

func TestTokens_SignAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	u := &user.User{
		ID:      uuid.New(),
		Email:   "staff@example.com",
		IsAdmin: true,
	}

	raw, err := tokens.Sign(u)
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.True(t, claims.Admin)
}

func TestTokens_VerifyRejectsWrongSecret(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Sign(&user.User{ID: uuid.New(), Email: "staff@example.com"})
	require.NoError(t, err)

	_, err = NewTokens("other-secret", time.Hour).Verify(raw)
	assert.Error(t, err)
}

func TestTokens_VerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	raw, err := tokens.Sign(&user.User{ID: uuid.New(), Email: "staff@example.com"})
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}
