package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"travel-app/tour-review-service/internal/models"
)

type JWTUtil struct {
	secret string
}

func NewJWTUtil(secret string) *JWTUtil {
	return &JWTUtil{secret: secret}
}

// TokenClaims is what the auth service puts into each signed token. End-user
// tokens carry an empty permission list; admin tokens list their role's
// capabilities.
type TokenClaims struct {
	UserID      string
	Role        string
	Permissions models.PermissionSet
}

func (j *JWTUtil) GenerateToken(userID, role string, permissions []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     userID,
		"role":        role,
		"permissions": permissions,
		"exp":         now.Add(72 * time.Hour).Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTUtil) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unauthorized")
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := mapClaims["user_id"].(string)
	if userID == "" {
		return nil, errors.New("invalid token")
	}
	role, _ := mapClaims["role"].(string)

	var names []string
	if raw, ok := mapClaims["permissions"].([]interface{}); ok {
		for _, p := range raw {
			if name, ok := p.(string); ok {
				names = append(names, name)
			}
		}
	}

	return &TokenClaims{
		UserID:      userID,
		Role:        role,
		Permissions: models.NewPermissionSet(names),
	}, nil
}
