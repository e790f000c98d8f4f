package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const AdminRole = "admin"

// GenerateAdminToken creates a signed HS256 admin token for the given subject.
// cmd/admintoken wraps it for operators.
func GenerateAdminToken(secret, subject string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("admin secret is not configured")
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": AdminRole,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
}

// ExtractAdminSubject validates an admin token and returns its subject.
func ExtractAdminSubject(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", errors.New("admin secret is not configured")
	}
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	if role, _ := claims["role"].(string); role != AdminRole {
		return "", errors.New("token does not carry the admin role")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}

	return sub, nil
}
