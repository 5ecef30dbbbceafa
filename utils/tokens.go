// utils/tokens.go
package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateConfirmationToken issues a signed, expiring token bound to a client
// and a single appointment. Embedded in the confirmation deep link sent by
// email; anyone holding the link can confirm only that appointment, and only
// until the token expires.
func GenerateConfirmationToken(clientID, appointmentID string, ttl time.Duration) (string, error) {
	return signScopedToken(jwt.MapClaims{
		"sub":   clientID,
		"apt":   appointmentID,
		"scope": "confirm",
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	})
}

// ValidateConfirmationToken checks signature, expiry and that the token was
// issued for this exact {client, appointment} pair.
func ValidateConfirmationToken(tokenString, clientID, appointmentID string) error {
	claims, err := parseScopedToken(tokenString, "confirm")
	if err != nil {
		return err
	}
	if claims["sub"] != clientID || claims["apt"] != appointmentID {
		return ErrInvalidToken
	}
	return nil
}

// GeneratePasswordResetToken issues a signed, expiring token for one user.
func GeneratePasswordResetToken(userID string, ttl time.Duration) (string, error) {
	return signScopedToken(jwt.MapClaims{
		"sub":   userID,
		"scope": "password_reset",
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	})
}

// ValidatePasswordResetToken returns the user id the token was issued for.
func ValidatePasswordResetToken(tokenString string) (string, error) {
	claims, err := parseScopedToken(tokenString, "password_reset")
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func signScopedToken(claims jwt.MapClaims) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseScopedToken(tokenString, scope string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != scope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
