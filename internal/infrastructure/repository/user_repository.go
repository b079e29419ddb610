package repository

import (
	"context"
	"errors"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

type userRepository struct {
	provider database.Provider
}

// NewUserRepository creates a new user repository
func NewUserRepository(provider database.Provider) domainRepo.UserRepository {
	return &userRepository{provider: provider}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = db.Where("LOWER(username) = LOWER(?) AND active = ?", username, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	return db.Save(user).Error
}
