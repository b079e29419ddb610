package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 24*time.Hour)
	sessionID, userID := uuid.New(), uuid.New()

	token, err := m.GenerateSessionToken(sessionID, userID, "dave", time.Now().Add(m.SessionExpiry()))
	require.NoError(t, err)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "dave", claims.Username)

	got, err := claims.SessionID()
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestValidateSessionTokenRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	expired, err := m.GenerateSessionToken(uuid.New(), uuid.New(), "dave", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = m.ValidateSessionToken(expired)
	assert.Error(t, err)

	other := NewJWTManager("other-secret", time.Hour)
	foreign, err := other.GenerateSessionToken(uuid.New(), uuid.New(), "dave", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = m.ValidateSessionToken(foreign)
	assert.Error(t, err)

	_, err = m.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}
