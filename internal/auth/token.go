package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/homegrid/community-service/internal/domain"
)

// TokenCodec signs and verifies bearer tokens with a symmetric secret.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenCodec builds a codec for the given secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
		),
	}
}

// Encode signs a token carrying subject and expiresAt. The expiration is
// stored with one second precision.
func (tc *TokenCodec) Encode(subject string, expiresAt time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Decode verifies tokenStr and returns its subject and expiration.
func (tc *TokenCodec) Decode(tokenStr string) (domain.Token, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := tc.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return domain.Token{}, ErrInvalidToken
	}
	return domain.Token{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
