// Package auth verifies the signed identity presented at connection time.
// The rest of the system treats the resulting Identity as the only source of
// truth for who a connection or request belongs to.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// ErrInvalidToken covers every way a credential can fail verification
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload carried by an auction session token
type Claims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 session tokens against a shared secret
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given signing secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token, returning the identity it asserts.
// Any parse, signature or expiry failure maps to ErrInvalidToken.
func (v *Verifier) Verify(tokenStr string) (model.Identity, error) {
	if tokenStr == "" {
		return model.Identity{}, fmt.Errorf("auth: missing token: %w", ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("auth: %v: %w", err, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return model.Identity{}, fmt.Errorf("auth: malformed claims: %w", ErrInvalidToken)
	}

	return model.Identity{
		UserID:   claims.UserID,
		UserName: claims.UserName,
		Role:     claims.Role,
	}, nil
}

// Sign issues a token for an identity. Login flows live outside this system;
// Sign exists for tests and local seeding.
func (v *Verifier) Sign(id model.Identity, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   id.UserID,
		UserName: id.UserName,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(v.secret)
}
