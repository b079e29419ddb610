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

type sessionRepository struct {
	provider database.Provider
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(provider database.Provider) domainRepo.SessionRepository {
	return &sessionRepository{provider: provider}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var session entity.Session
	err = db.Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Save(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Where("expires_at < ?", time.Now()).Delete(&entity.Session{}).Error
}
