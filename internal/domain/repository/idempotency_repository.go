package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
)

// IdempotencyRepository stores the first response of guarded POST requests
type IdempotencyRepository interface {
	// Find returns the stored response for a user's key, nil if there is none
	Find(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes responses past their replay window
	DeleteExpired(ctx context.Context) error
}
