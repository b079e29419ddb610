package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/presentation/http/middleware"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	loggedOut uuid.UUID
}

func (s *stubAuth) Login(_ context.Context, in *service.LoginInput) (*service.LoginOutput, error) {
	if in.Username != "yard" || in.Password != "s3cret" {
		return nil, apperror.ErrInvalidCredentials
	}
	return &service.LoginOutput{
		User:      &entity.User{ID: uuid.New(), Username: "yard"},
		Session:   &entity.Session{ID: testSessionID},
		Token:     "signed.token.value",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *stubAuth) Logout(_ context.Context, id uuid.UUID) error {
	s.loggedOut = id
	return nil
}

func newAuthRouter(auth AuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(auth, CookieConfig{Name: "yardops_session"})
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, testSessionID)
		c.Next()
	}, h.Logout)
	return r
}

func TestLoginSetsCookie(t *testing.T) {
	r := newAuthRouter(&stubAuth{})

	w := doRequest(r, http.MethodPost, "/auth/login", `{"username":"yard","password":"s3cret"}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"signed.token.value"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "yardops_session", cookies[0].Name)
	assert.Equal(t, "signed.token.value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginFailures(t *testing.T) {
	r := newAuthRouter(&stubAuth{})

	w := doRequest(r, http.MethodPost, "/auth/login", `{"username":"yard","password":"nope"}`, "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/login", `{"username":"yard"}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	auth := &stubAuth{}
	r := newAuthRouter(auth)

	w := doRequest(r, http.MethodPost, "/auth/logout", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testSessionID, auth.loggedOut)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
