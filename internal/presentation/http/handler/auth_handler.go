package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/response"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles login session HTTP requests
type AuthHandler struct {
	authService AuthUseCase
	cookie      CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

// Login handles user login
// @Summary Login
// @Description Check credentials, open a session and return its token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, output.Token, int(time.Until(output.ExpiresAt).Seconds()))

	response.OK(c, "Login successful", gin.H{
		"user": gin.H{
			"id":           output.User.ID,
			"username":     output.User.Username,
			"display_name": output.User.DisplayName,
		},
		"access_token": output.Token,
		"token_type":   "Bearer",
		"expires_at":   output.ExpiresAt,
	})
}

// Logout closes the current session
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, "", -1)
	response.OK(c, "Logout successful", nil)
}

// Me returns the signed-in user
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, "Session is active", gin.H{
		"username":   GetUsername(c),
		"session_id": GetSessionID(c),
	})
}
