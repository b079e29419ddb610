package handler

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/sangkips/yardops-api/internal/presentation/http/middleware"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

// StatsUseCase is what the statistics handlers need from the stats service
type StatsUseCase interface {
	BuildDashboard(ctx context.Context, q service.StatsQuery) (*service.StatsDashboard, error)
	Report(ctx context.Context, q service.StatsQuery) (*service.StatsReport, error)
	Order(ctx context.Context) []string
	SaveOrder(ctx context.Context, order []string) ([]string, error)
	SaveExclusions(ctx context.Context, sessionID uuid.UUID, dimension enum.StatsDimension, names []string) ([]string, error)
	MonthlyDrilldown(ctx context.Context, q service.DrilldownQuery) (*service.MonthlyDrilldown, error)
	DailyDrilldown(ctx context.Context, q service.DrilldownQuery) (*service.DailyDrilldown, error)
}

// AuthUseCase is what the auth handlers need from the auth service
type AuthUseCase interface {
	Login(ctx context.Context, input *service.LoginInput) (*service.LoginOutput, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// VehicleUseCase is what the vehicle handlers need from the vehicle service
type VehicleUseCase interface {
	Search(ctx context.Context, input *service.SearchInput) (*entity.Vehicle, error)
	Crush(ctx context.Context, input *service.CrushInput) (*service.CrushResult, error)
}

// ActionLogUseCase is what the log handlers need from the action log service
type ActionLogUseCase interface {
	List(ctx context.Context, q service.LogQuery) (*pagination.PaginatedResult[entity.ActionLog], error)
	All(ctx context.Context) ([]entity.ActionLog, error)
}

// PartsFinderUseCase is what the parts handlers need from the parts finder
type PartsFinderUseCase interface {
	Search(ctx context.Context, in service.PartsSearchInput) (*service.PartsSearchResult, error)
	Models(ctx context.Context, query string) ([]string, error)
}

// GetUsername extracts the signed-in username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(middleware.ContextUsername)
}

// GetSessionID extracts the session id from the Gin context
func GetSessionID(c *gin.Context) uuid.UUID {
	return middleware.GetSessionID(c)
}

// viewParams keeps the non-empty dashboard view fields for a redirect
func viewParams(filter, startDate, endDate, mode, dimension string) url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"filter":     filter,
		"start_date": startDate,
		"end_date":   endDate,
		"mode":       mode,
		"dimension":  dimension,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}
