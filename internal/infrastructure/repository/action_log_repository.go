package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

type actionLogRepository struct {
	provider database.Provider
}

// NewActionLogRepository creates a new action log repository
func NewActionLogRepository(provider database.Provider) domainRepo.ActionLogRepository {
	return &actionLogRepository{provider: provider}
}

func (r *actionLogRepository) Create(ctx context.Context, log *entity.ActionLog) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	// timestamp is filled in by the column default
	return db.Omit("timestamp").Create(log).Error
}

func (r *actionLogRepository) ListRange(ctx context.Context, rng daterange.Range, params *pagination.PaginationParams) ([]entity.ActionLog, int64, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := db.Model(&entity.ActionLog{}).
		Where("timestamp >= ? AND timestamp < ?", sqlDate(rng.Start), sqlDate(rng.End))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count action logs: %w", err)
	}

	var logs []entity.ActionLog
	err = query.Order("timestamp DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list action logs: %w", err)
	}
	return logs, total, nil
}

func (r *actionLogRepository) ListRecent(ctx context.Context, limit int) ([]entity.ActionLog, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var logs []entity.ActionLog
	if err := db.Order("timestamp DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list recent action logs: %w", err)
	}
	return logs, nil
}

func (r *actionLogRepository) ListAll(ctx context.Context) ([]entity.ActionLog, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var logs []entity.ActionLog
	if err := db.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list action logs: %w", err)
	}
	return logs, nil
}
