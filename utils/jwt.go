package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the identity carried by an access token: the
// authenticated email, plus the admin flag for the couple's accounts.
type TokenClaims struct {
	Email string
	Admin bool
}

// GenerateAccessToken issues an HS256 token for the given identity.
func GenerateAccessToken(email string, admin bool) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"admin": admin,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates a token string and extracts its claims.
func ParseAccessToken(tokenString string) (*TokenClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("token missing email claim")
	}
	admin, _ := claims["admin"].(bool)

	return &TokenClaims{Email: email, Admin: admin}, nil
}
