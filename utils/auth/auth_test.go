package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "cms-test"})

	issued, err := m.Issue(7, "admin@example.edu", "admin", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := m.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, issued.JTI, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "cms-test"})

	other := NewJWTManager(JWTConfig{Secret: "other-secret", Expiry: time.Hour, Issuer: "cms-test"})
	forged, err := other.Issue(1, "x@example.edu", "admin", 0)
	require.NoError(t, err)

	_, err = m.ValidateToken(forged.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "cms-test"})
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(1, "x@example.edu", "admin", 0)
	require.NoError(t, err)

	_, err = m.ValidateToken(old.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong horse"), ErrPasswordMismatch)

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
