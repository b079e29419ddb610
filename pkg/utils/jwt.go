package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "yardops-api"

// JWTClaims represents the claims in a session token. The registered ID
// claim (jti) carries the session id.
type JWTClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// SessionID returns the session the token belongs to
func (c *JWTClaims) SessionID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

// JWTManager handles session token generation and validation
type JWTManager struct {
	secretKey     []byte
	sessionExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, sessionExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secret),
		sessionExpiry: sessionExpiry,
	}
}

// SessionExpiry returns how long a session token stays valid
func (m *JWTManager) SessionExpiry() time.Duration {
	return m.sessionExpiry
}

// GenerateSessionToken generates a token bound to a session id
func (m *JWTManager) GenerateSessionToken(sessionID, userID uuid.UUID, username string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateSessionToken validates a token and returns the claims
func (m *JWTManager) ValidateSessionToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if _, err := claims.SessionID(); err != nil {
		return nil, errors.New("invalid session id in token")
	}

	return claims, nil
}
