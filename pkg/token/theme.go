package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ThemeClaims подписанный итог слот-машины: тема и ингредиенты
type ThemeClaims struct {
	Theme       map[string]string `json:"theme"`
	Ingredients []string          `json:"ingredients"`
	jwt.RegisteredClaims
}

// GenerateThemeToken подписывает тему и ингредиенты, выпавшие в сессии sessionID
func GenerateThemeToken(sessionID string, theme map[string]string, ingredients []string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ThemeClaims{
		Theme:       theme,
		Ingredients: ingredients,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return t.SignedString(secretKey)
}

// VerifyThemeToken проверяет подпись и срок действия билета
func VerifyThemeToken(tokenStr string, secretKey []byte) (*ThemeClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &ThemeClaims{}, func(t *jwt.Token) (interface{}, error) {
		_, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := t.Claims.(*ThemeClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
