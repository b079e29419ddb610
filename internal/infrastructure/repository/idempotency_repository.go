package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	provider database.Provider
}

// NewIdempotencyRepository creates the gorm backed store of replayable responses
func NewIdempotencyRepository(provider database.Provider) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{provider: provider}
}

func (r *idempotencyRepository) Find(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var ikey entity.IdempotencyKey
	err = db.Where("user_id = ? AND key = ?", userID, key).First(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Where("expires_at < ?", time.Now()).Delete(&entity.IdempotencyKey{}).Error
}
