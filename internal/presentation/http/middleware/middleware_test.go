package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	session *entity.Session
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*utils.JWTClaims, *entity.Session, error) {
	switch token {
	case "good":
		return &utils.JWTClaims{UserID: s.session.UserID, Username: "yard"}, s.session, nil
	case "ended":
		return nil, nil, apperror.ErrSessionExpired
	default:
		return nil, nil, apperror.ErrInvalidToken
	}
}

func authRouter() (*gin.Engine, *entity.Session) {
	gin.SetMode(gin.TestMode)
	session := &entity.Session{ID: uuid.New(), UserID: uuid.New()}
	r := gin.New()
	r.Use(AuthMiddleware(&stubAuthenticator{session: session}, "yardops_session"))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(ContextUsername), "session": GetSessionID(c)})
	})
	return r, session
}

func TestAuthMiddleware(t *testing.T) {
	r, session := authRouter()

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer good", "", http.StatusOK},
		{"lowercase bearer", "bearer good", "", http.StatusOK},
		{"cookie", "", "good", http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"malformed header", "Token good", "", http.StatusUnauthorized},
		{"ended session", "Bearer ended", "", http.StatusUnauthorized},
		{"bad token", "Bearer junk", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "yardops_session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), session.ID.String())
			}
		})
	}
}

func TestUserRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewUserRateLimiter(2, time.Hour)
	defer rl.Close()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUsername, c.GetHeader("X-User"))
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("alice"))
	assert.Equal(t, http.StatusOK, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	assert.Equal(t, http.StatusOK, call("bob"))
}

type memIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (m *memIdempotencyRepo) Find(_ context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	return m.keys[userID.String()+key], nil
}

func (m *memIdempotencyRepo) Save(_ context.Context, k *entity.IdempotencyKey) error {
	m.keys[k.UserID.String()+k.Key] = k
	return nil
}

func (m *memIdempotencyRepo) DeleteExpired(context.Context) error { return nil }

func TestIdempotencyReplaysSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
	userID := uuid.New()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	})
	r.Use(Idempotency(repo, zap.NewNop()))
	r.POST("/crush", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	post := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/crush", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := post("k1")
	require.Equal(t, http.StatusOK, first.Code)
	second := post("k1")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, calls)

	post("")
	post("k2")
	assert.Equal(t, 3, calls)
}
