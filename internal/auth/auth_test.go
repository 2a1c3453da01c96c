package auth

import (
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate(42, models.UserRoleTeacher)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, models.UserRoleTeacher, claims.Role)
}

func TestTokenManager_RejectsBadTokens(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := other.Generate(1, models.UserRoleStudent)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Generate(1, models.UserRoleStudent)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(models.UserRoleTeacher, models.UserRoleStudent, models.UserRoleTeacher))
	assert.False(t, HasRole(models.UserRoleAdmin, models.UserRoleStudent))
	assert.True(t, IsAdmin(models.UserRoleAdmin))
}
