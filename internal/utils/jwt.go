package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pathology-case-server/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims structure.
type Claims struct {
	UserID string          `json:"userId"`
	Role   models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair holds an access token and its refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GenerateTokens creates a new access/refresh token pair for a user.
func GenerateTokens(user *models.User, secret, refreshSecret string, accessExp, refreshExp time.Duration) (*TokenPair, error) {
	access, err := signToken(user, secret, accessExp)
	if err != nil {
		return nil, err
	}

	refresh, err := signToken(user, refreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(user *models.User, secret string, exp time.Duration) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a JWT, returning its claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
