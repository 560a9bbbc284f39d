package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	tokenSecret string
	tokenExpiry time.Duration
)

// InitSessionTokens initializes the session token secret and expiry
func InitSessionTokens(secret string, expiry time.Duration) {
	tokenSecret = secret
	tokenExpiry = expiry
}

// SessionClaims represents the claims embedded in a session token
type SessionClaims struct {
	SessionID string `json:"session_id"`
	PatientID uint   `json:"patient_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token binding a session id to a patient.
// The scanner hands this to the sensor device so readings can prove which
// session they belong to.
func GenerateSessionToken(sessionID string, patientID uint) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		PatientID: patientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tokenSecret))
}

// ValidateSessionToken validates and parses a session token
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(tokenSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
