package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestSignParse_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := Sign(userID, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_Tampered(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := Sign(userID, testSecret)
	require.NoError(t, err)

	// Flip one byte in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	got, err := Parse(tampered, testSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.Equal(t, uuid.Nil, got)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Sign(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = Parse(token, []byte("another-secret"))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParse_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	_, err := Parse("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
