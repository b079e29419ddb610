package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

// RecentLogLimit is how many entries are listed when the filter names no range
const RecentLogLimit = 100

// ActionLogService lists the crush workflow audit trail
type ActionLogService struct {
	actionLogRepo repository.ActionLogRepository
	loc           *time.Location
	now           func() time.Time
}

// NewActionLogService creates a new action log service
func NewActionLogService(actionLogRepo repository.ActionLogRepository, loc *time.Location) *ActionLogService {
	return &ActionLogService{
		actionLogRepo: actionLogRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// LogQuery filters the action log. An empty FilterType means today. An
// unrecognised FilterType, or custom without both dates, lists the latest entries.
type LogQuery struct {
	FilterType string
	StartDate  string
	EndDate    string
	Pagination *pagination.PaginationParams
}

// List returns a page of entries, newest first
func (s *ActionLogService) List(ctx context.Context, q LogQuery) (*pagination.PaginatedResult[entity.ActionLog], error) {
	filterType := strings.ToLower(strings.TrimSpace(q.FilterType))
	if filterType == "" {
		filterType = daterange.FilterToday
	}
	if !namesRange(filterType, q.StartDate, q.EndDate) {
		return s.recent(ctx)
	}

	rng, err := daterange.Resolve(filterType, q.StartDate, q.EndDate, s.now().In(s.loc))
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidRange) {
			return nil, apperror.NewFieldError("date_range", err.Error())
		}
		return nil, err
	}

	params := q.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	logs, total, err := s.actionLogRepo.ListRange(ctx, rng, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(logs, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *ActionLogService) recent(ctx context.Context) (*pagination.PaginatedResult[entity.ActionLog], error) {
	logs, err := s.actionLogRepo.ListRecent(ctx, RecentLogLimit)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(logs, pagination.NewPagination(1, RecentLogLimit, int64(len(logs)))), nil
}

func namesRange(filterType, start, end string) bool {
	switch filterType {
	case daterange.FilterToday, daterange.FilterYesterday, daterange.FilterThisMonth, daterange.FilterLastMonth:
		return true
	case daterange.FilterCustom:
		return strings.TrimSpace(start) != "" && strings.TrimSpace(end) != ""
	default:
		return false
	}
}

// All returns every entry, newest first
func (s *ActionLogService) All(ctx context.Context) ([]entity.ActionLog, error) {
	return s.actionLogRepo.ListAll(ctx)
}
