package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
)

// SessionRepository defines the interface for login session persistence
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindByID returns nil when the session does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
