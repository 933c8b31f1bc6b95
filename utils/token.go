package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"healthcare-backend/config"
	"healthcare-backend/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed payload of both access and refresh tokens. TokenType
// keeps the two from being used interchangeably; ID (jti) is what the
// blacklist keys on.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateToken signs a single HS256 token for the user.
func GenerateToken(user *models.User, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateTokenPair issues a fresh access/refresh pair.
func GenerateTokenPair(user *models.User, cfg *config.Config) (access string, refresh string, err error) {
	access, err = GenerateToken(user, TokenTypeAccess, cfg.AccessTTL, cfg.JWTSecret)
	if err != nil {
		return "", "", err
	}
	refresh, err = GenerateToken(user, TokenTypeRefresh, cfg.RefreshTTL, cfg.JWTSecret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
