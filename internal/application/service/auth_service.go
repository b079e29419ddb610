package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles dashboard login sessions
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	log         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User      *entity.User
	Session   *entity.Session
	Token     string
	ExpiresAt time.Time
}

// Login checks the credentials and opens a new session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info("login rejected", zap.String("username", username))
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Info("login rejected", zap.String("username", username))
		return nil, apperror.ErrInvalidCredentials
	}

	now := time.Now()
	session := &entity.Session{
		ID:                  uuid.New(),
		UserID:              user.ID,
		Username:            user.Username,
		ExcludedDepartments: []string{},
		ExcludedUsers:       []string{},
		ExpiresAt:           now.Add(s.jwtManager.SessionExpiry()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateSessionToken(session.ID, user.ID, user.Username, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warn("failed to record last login", zap.String("username", user.Username), zap.Error(err))
	}

	s.log.Info("user logged in", zap.String("username", user.Username), zap.String("session_id", session.ID.String()))

	return &LoginOutput{
		User:      user,
		Session:   session,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Authenticate validates a session token and checks the session is still open
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, *entity.Session, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, nil, apperror.ErrInvalidToken
	}

	sessionID, _ := claims.SessionID()
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, nil, apperror.ErrSessionExpired
	}

	return claims, session, nil
}

// Logout closes a session. Closing an unknown session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("session closed", zap.String("session_id", sessionID.String()))
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}
