package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CheckPassword("Sup3rSecret!", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected error
	}{
		{name: "Too short", password: "Ab1!", expected: ErrPasswordTooShort},
		{name: "Only lowercase", password: "abcdefgh", expected: ErrPasswordTooWeak},
		{name: "Two character classes", password: "abcdefg1", expected: ErrPasswordTooWeak},
		{name: "Upper lower number", password: "Abcdefg1", expected: nil},
		{name: "Lower number special", password: "abcdef1!", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestJWTService_TokenPairRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "gabai")

	access, refresh, err := svc.GenerateTokenPair("user-1", "alice@nemsu.edu.ph", "Alice", "user", "sess-1")
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@nemsu.edu.ph", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "access", claims.TokenType)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("real-secret", "gabai")
	token, err := svc.GenerateAccessToken("user-1", "a@b.c", "A", "user", "sess-1")
	require.NoError(t, err)

	other := NewJWTService("other-secret", "gabai")
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "gabai")
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("token-value")
	b := HashToken("token-value")
	c := HashToken("different")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded sha256
}

func TestExtractTokenFromBearer(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromBearer("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromBearer("abc123"))
	assert.Equal(t, "", ExtractTokenFromBearer(""))
}
