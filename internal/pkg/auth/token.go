package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agency-service/internal/config"
)

// TokenIssuer mints and validates signed session tokens bound to an agency id.
type TokenIssuer interface {
	Issue(agencyID uuid.UUID) (string, error)
	Validate(tokenString string) (uuid.UUID, error)
}

type hmacTokenIssuer struct {
	signingKey []byte
	ttl        time.Duration
	timeFunc   func() time.Time
}

type sessionClaims struct {
	AgencyID uuid.UUID `json:"aid"`
	jwt.RegisteredClaims
}

// NewTokenIssuer builds an HMAC-SHA256 issuer from config. The secret is
// injected once at construction; nothing reads it from ambient state later.
func NewTokenIssuer(cfg *config.AuthConfig) (TokenIssuer, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacTokenIssuer{
		signingKey: []byte(cfg.JWTSecret),
		ttl:        cfg.TokenTTL,
		timeFunc:   time.Now,
	}, nil
}

func (s *hmacTokenIssuer) Issue(agencyID uuid.UUID) (string, error) {
	now := s.timeFunc()

	claims := sessionClaims{
		AgencyID: agencyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   agencyID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func (s *hmacTokenIssuer) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session claims")
	}

	return claims.AgencyID, nil
}
