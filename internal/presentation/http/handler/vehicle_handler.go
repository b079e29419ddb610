package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

// VehicleHandler handles the crush workflow and its action log
type VehicleHandler struct {
	vehicleService   VehicleUseCase
	actionLogService ActionLogUseCase
	exportService    *service.ExportService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService VehicleUseCase, actionLogService ActionLogUseCase, exportService *service.ExportService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService:   vehicleService,
		actionLogService: actionLogService,
		exportService:    exportService,
	}
}

// Search finds a vehicle by registration or stock number
// @Summary Search vehicle
// @Tags vehicles
// @Produce json
// @Param registration query string false "registration number"
// @Param stock_number query string false "stock number"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /vehicles/search [get]
func (h *VehicleHandler) Search(c *gin.Context) {
	var req request.VehicleSearchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	vehicle, err := h.vehicleService.Search(c.Request.Context(), &service.SearchInput{
		Registration: req.Registration,
		StockNumber:  req.StockNumber,
		Username:     GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle found", vehicle)
}

// Crush moves a vehicle to the crushed location
// @Summary Crush vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path int true "stock number id"
// @Param Idempotency-Key header string false "replays the first response"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /vehicles/{id}/crush [post]
func (h *VehicleHandler) Crush(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	// the body is optional
	var req request.CrushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.vehicleService.Crush(c.Request.Context(), &service.CrushInput{
		StockNumberID: id,
		Registration:  req.Registration,
		VStockNo:      req.VStockNo,
		Username:      GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle crushed successfully", result)
}

// ListLogs lists the action log
// @Summary Action log
// @Tags logs
// @Produce json
// @Param filter query string false "date filter, default today; an unknown value lists the latest entries"
// @Param page query int false "page number"
// @Param per_page query int false "items per page"
// @Success 200 {object} response.APIResponse
// @Router /logs [get]
func (h *VehicleHandler) ListLogs(c *gin.Context) {
	var req request.LogQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.actionLogService.List(c.Request.Context(), service.LogQuery{
		FilterType: req.Filter,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Action log retrieved successfully", result)
}

// ExportLogs downloads the whole action log as a spreadsheet
// @Summary Export action log
// @Tags logs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /logs/export [get]
func (h *VehicleHandler) ExportLogs(c *gin.Context) {
	logs, err := h.actionLogService.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := h.exportService.LogsWorkbook(logs)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.Attachment(c, service.LogsFilename(time.Now()), service.XLSXContentType, buf.Bytes())
}
