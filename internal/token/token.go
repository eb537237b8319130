// Package token issues and verifies the signed, single-purpose tokens used
// for email verification and password reset links.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purposes. Each purpose derives its own signing key, so a token issued for
// one purpose never verifies under another.
const (
	PurposeEmailVerify   = "email-verification"
	PurposePasswordReset = "password-reset"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Signer struct {
	secret string
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

func (s *Signer) key(purpose string) []byte {
	return []byte(s.secret + ":" + purpose)
}

// Issue signs a token for the given user and purpose, expiring after ttl.
func (s *Signer) Issue(userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": purpose,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key(purpose))
}

// Verify checks signature, expiry, and purpose, returning the user id the
// token was issued for.
func (s *Signer) Verify(raw string, purpose string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.key(purpose), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return uuid.Nil, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}
