package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the full lifetime of an access token. There is no server-side
// revocation: a signed token stays valid until exp.
const TTL = 7 * 24 * time.Hour

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed or forged")
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

// Sign mints an HS256 token carrying the user id as subject, expiring
// TTL from now.
func Sign(userID uuid.UUID, secret []byte) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Parse verifies signature and expiry and returns the embedded user id.
// Expiry is reported as ErrTokenExpired; every other failure, including
// a valid signature over a non-uuid subject, is ErrTokenMalformed.
func Parse(raw string, secret []byte) (uuid.UUID, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenMalformed
	}
	if !tkn.Valid {
		return uuid.Nil, ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return userID, nil
}
