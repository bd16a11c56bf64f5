package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "library-catalog")

	token, err := m.GenerateAccessToken("alice", "editor")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "editor", claims.Role)
	assert.Equal(t, "library-catalog", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute, "")
	token, err := m.GenerateAccessToken("alice", "")
	require.NoError(t, err)

	m.nowFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestManager_RejectsOtherTokenTypes(t *testing.T) {
	m := NewManager("secret", time.Hour, "")

	refresh := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		Type: "refresh",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := refresh.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(signed)
	assert.ErrorContains(t, err, "invalid token type")
}

func TestManager_RejectsNoneAlgorithm(t *testing.T) {
	m := NewManager("secret", time.Hour, "")

	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{Type: "access"})
	signed, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.Error(t, err)
}
