package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"go.uber.org/zap"
)

// VehicleService runs the crush workflow: find a vehicle, then move it to the
// crushed location. Every step is written to the action log.
type VehicleService struct {
	vehicleRepo   repository.VehicleRepository
	actionLogRepo repository.ActionLogRepository
	crushLocation string
	log           *zap.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	actionLogRepo repository.ActionLogRepository,
	crushLocation string,
	log *zap.Logger,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:   vehicleRepo,
		actionLogRepo: actionLogRepo,
		crushLocation: crushLocation,
		log:           log,
	}
}

// SearchInput identifies a vehicle by registration or stock number
type SearchInput struct {
	Registration string
	StockNumber  string
	Username     string
}

// Search looks a vehicle up and records the outcome
func (s *VehicleService) Search(ctx context.Context, input *SearchInput) (*entity.Vehicle, error) {
	reg := strings.TrimSpace(input.Registration)
	stock := strings.TrimSpace(input.StockNumber)
	if reg == "" && stock == "" {
		return nil, apperror.NewBadRequestError("registration or stock_number is required")
	}

	vehicle, err := s.vehicleRepo.Find(ctx, reg, stock)
	if err != nil {
		return nil, err
	}

	entry := &entity.ActionLog{
		Action:      entity.ActionSearch,
		Username:    input.Username,
		RegNumber:   optional(reg),
		StockNumber: optional(stock),
		Status:      entity.ActionStatusMissing,
	}
	if vehicle != nil {
		entry.Status = entity.ActionStatusFound
		entry.VStockNo = optional(vehicle.VStockNo)
		entry.Location = vehicle.LocationBin
	}
	s.record(ctx, entry)

	if vehicle == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Vehicle with registration %q or stock number %q", reg, stock))
	}
	return vehicle, nil
}

// CrushInput identifies the vehicle to crush. Registration and VStockNo are
// only copied into the action log.
type CrushInput struct {
	StockNumberID int64
	Registration  string
	VStockNo      string
	Username      string
}

// CrushResult reports where the vehicle was moved
type CrushResult struct {
	StockNumberID int64  `json:"stocknumber_id"`
	LocationID    string `json:"location_id"`
	Status        string `json:"status"`
}

// Crush moves the vehicle to the crushed location
func (s *VehicleService) Crush(ctx context.Context, input *CrushInput) (*CrushResult, error) {
	if input.StockNumberID <= 0 {
		return nil, apperror.NewFieldError("id", "must be a positive stock number id")
	}

	moved, err := s.vehicleRepo.MoveToLocation(ctx, input.StockNumberID, s.crushLocation)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewNotFoundError("Vehicle")
	}

	s.record(ctx, &entity.ActionLog{
		Action:      entity.ActionCrush,
		Username:    input.Username,
		RegNumber:   optional(strings.TrimSpace(input.Registration)),
		StockNumber: optional(strconv.FormatInt(input.StockNumberID, 10)),
		VStockNo:    optional(strings.TrimSpace(input.VStockNo)),
		Location:    optional(s.crushLocation),
		Status:      entity.ActionStatusCrushed,
	})

	return &CrushResult{
		StockNumberID: input.StockNumberID,
		LocationID:    s.crushLocation,
		Status:        entity.ActionStatusCrushed,
	}, nil
}

// record writes an audit entry. A failed write is logged and does not fail the request.
func (s *VehicleService) record(ctx context.Context, entry *entity.ActionLog) {
	if err := s.actionLogRepo.Create(ctx, entry); err != nil {
		s.log.Error("failed to write action log",
			zap.String("action", entry.Action),
			zap.String("status", entry.Status),
			zap.Error(err),
		)
		return
	}
	s.log.Info("vehicle action",
		zap.String("action", entry.Action),
		zap.String("status", entry.Status),
		zap.String("username", entry.Username),
	)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
