package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/presentation/http/middleware"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicles struct {
	search *service.SearchInput
	crush  *service.CrushInput
}

func (s *stubVehicles) Search(_ context.Context, in *service.SearchInput) (*entity.Vehicle, error) {
	s.search = in
	if in.Registration == "" && in.StockNumber == "" {
		return nil, apperror.NewBadRequestError("registration or stock_number is required")
	}
	if in.Registration != "AB12CDE" {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return &entity.Vehicle{StockNumberID: 42, Registration: "AB12CDE", VStockNo: "V100"}, nil
}

func (s *stubVehicles) Crush(_ context.Context, in *service.CrushInput) (*service.CrushResult, error) {
	s.crush = in
	if in.StockNumberID != 42 {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return &service.CrushResult{StockNumberID: 42, LocationID: "11045", Status: entity.ActionStatusCrushed}, nil
}

type stubLogs struct {
	query service.LogQuery
}

func (s *stubLogs) List(_ context.Context, q service.LogQuery) (*pagination.PaginatedResult[entity.ActionLog], error) {
	s.query = q
	items := []entity.ActionLog{{Action: entity.ActionSearch, Status: entity.ActionStatusFound}}
	return pagination.NewPaginatedResult(items, pagination.NewPagination(1, 50, 1)), nil
}

func (s *stubLogs) All(context.Context) ([]entity.ActionLog, error) {
	return []entity.ActionLog{{Timestamp: time.Now(), Action: entity.ActionCrush}}, nil
}

func newVehicleRouter(v VehicleUseCase, l ActionLogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUsername, "yard")
		c.Next()
	})
	h := NewVehicleHandler(v, l, service.NewExportService(time.UTC))
	r.GET("/vehicles/search", h.Search)
	r.POST("/vehicles/:id/crush", h.Crush)
	r.GET("/logs", h.ListLogs)
	r.GET("/logs/export", h.ExportLogs)
	return r
}

func TestVehicleSearch(t *testing.T) {
	vehicles := &stubVehicles{}
	r := newVehicleRouter(vehicles, &stubLogs{})

	w := doRequest(r, http.MethodGet, "/vehicles/search?registration=AB12CDE", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stocknumber_id":42`)
	assert.Equal(t, "yard", vehicles.search.Username)

	w = doRequest(r, http.MethodGet, "/vehicles/search?stock_number=V999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/vehicles/search", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleCrush(t *testing.T) {
	vehicles := &stubVehicles{}
	r := newVehicleRouter(vehicles, &stubLogs{})

	w := doRequest(r, http.MethodPost, "/vehicles/42/crush", `{"registration":"AB12CDE","vstockno":"V100"}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"location_id":"11045"`)
	assert.Equal(t, "AB12CDE", vehicles.crush.Registration)
	assert.Equal(t, "yard", vehicles.crush.Username)

	w = doRequest(r, http.MethodPost, "/vehicles/42/crush", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/vehicles/7/crush", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/vehicles/abc/crush", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogsEndpoints(t *testing.T) {
	logs := &stubLogs{}
	r := newVehicleRouter(&stubVehicles{}, logs)

	w := doRequest(r, http.MethodGet, "/logs?filter=today&page=2&per_page=10", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "today", logs.query.FilterType)
	assert.Equal(t, 2, logs.query.Pagination.Page)
	assert.Equal(t, 10, logs.query.Pagination.PerPage)
	assert.Contains(t, w.Body.String(), `"pagination"`)

	w = doRequest(r, http.MethodGet, "/logs/export", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "action_log_")
}
