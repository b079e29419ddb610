package repository

import (
	"context"

	"github.com/sangkips/yardops-api/internal/domain/entity"
)

// UserRepository defines the interface for the dashboard credential table
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByUsername returns nil when no active user has that name
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
