package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yardops-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextSessionID = "session_id"
)

// SessionAuthenticator validates a session token
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.JWTClaims, *entity.Session, error)
}

// AuthMiddleware accepts a bearer token or the session cookie and rejects
// requests whose session has ended
func AuthMiddleware(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextSessionID, session.ID)

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetSessionID returns the session of the authenticated request
func GetSessionID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ContextSessionID)
	sessionID, _ := id.(uuid.UUID)
	return sessionID
}
