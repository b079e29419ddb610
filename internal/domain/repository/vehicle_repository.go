package repository

import (
	"context"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

// VehicleRepository defines the interface for the yard system's vehicle records
type VehicleRepository interface {
	// Find returns the first vehicle matching the registration or the stock number, nil if none
	Find(ctx context.Context, registration, stockNumber string) (*entity.Vehicle, error)
	// MoveToLocation relocates a vehicle, reporting false when no vehicle has that stock number id
	MoveToLocation(ctx context.Context, stockNumberID int64, locationID string) (bool, error)
}

// ActionLogRepository defines the interface for the crush workflow audit trail
type ActionLogRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	// ListRange returns entries inside the range, newest first
	ListRange(ctx context.Context, r daterange.Range, params *pagination.PaginationParams) ([]entity.ActionLog, int64, error)
	// ListRecent returns the latest entries, newest first
	ListRecent(ctx context.Context, limit int) ([]entity.ActionLog, error)
	// ListAll returns every entry, newest first
	ListAll(ctx context.Context) ([]entity.ActionLog, error)
}
