package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

type vehicleRepository struct {
	provider database.Provider
}

// NewVehicleRepository creates a repository over the yard system's vehicle tables
func NewVehicleRepository(provider database.Provider) domainRepo.VehicleRepository {
	return &vehicleRepository{provider: provider}
}

func (r *vehicleRepository) Find(ctx context.Context, registration, stockNumber string) (*entity.Vehicle, error) {
	if registration == "" && stockNumber == "" {
		return nil, nil
	}

	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var vehicles []entity.Vehicle
	if err := findVehicleQuery(db, registration, stockNumber).Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	if len(vehicles) == 0 {
		return nil, nil
	}
	return &vehicles[0], nil
}

// findVehicleQuery matches only on the identifiers that were given. A blank
// identifier must never match vehicles stored with a blank column.
func findVehicleQuery(db *gorm.DB, registration, stockNumber string) *gorm.DB {
	q := db.Table("vehicle veh").
		Select("veh.stocknumber_id, COALESCE(veh.regnumber, '') AS regnumber, COALESCE(st.vstockno, '') AS vstockno, loc.bin").
		Joins("JOIN stocknumber st ON st.stocknumber_id = veh.stocknumber_id").
		Joins("LEFT JOIN location loc ON loc.location_id = veh.location_id")

	switch {
	case registration != "" && stockNumber != "":
		q = q.Where("veh.regnumber = ? OR st.vstockno = ?", registration, stockNumber)
	case registration != "":
		q = q.Where("veh.regnumber = ?", registration)
	default:
		q = q.Where("st.vstockno = ?", stockNumber)
	}

	return q.Order("veh.stocknumber_id").Limit(1)
}

func (r *vehicleRepository) MoveToLocation(ctx context.Context, stockNumberID int64, locationID string) (bool, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return false, err
	}

	result := db.Exec(`UPDATE vehicle SET location_id = ? WHERE stocknumber_id = ?`, locationID, stockNumberID)
	if result.Error != nil {
		return false, fmt.Errorf("move vehicle %d: %w", stockNumberID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
