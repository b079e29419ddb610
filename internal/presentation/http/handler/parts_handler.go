package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// PartsHandler serves the parts opportunity finder
type PartsHandler struct {
	partsService  PartsFinderUseCase
	exportService *service.ExportService
}

// NewPartsHandler creates a new parts handler
func NewPartsHandler(partsService PartsFinderUseCase, exportService *service.ExportService) *PartsHandler {
	return &PartsHandler{
		partsService:  partsService,
		exportService: exportService,
	}
}

// Search ranks the catalog parts fitting a vehicle
// @Summary Parts opportunity search
// @Tags parts
// @Produce json
// @Param model query string true "vehicle model"
// @Param year query int true "model year"
// @Param engine_code query string false "engine code"
// @Param min_price query number false "minimum B price"
// @Param min_opportunity query number false "minimum opportunity score"
// @Param exclude_major_units query bool false "leave out engines, gearboxes and other major units"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /parts/search [get]
func (h *PartsHandler) Search(c *gin.Context) {
	in, ok := bindPartsSearch(c)
	if !ok {
		return
	}

	result, err := h.partsService.Search(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Parts retrieved successfully", result)
}

// Export downloads the result of a search as a spreadsheet. It takes the same
// parameters as Search and recomputes the result.
// @Summary Export parts search
// @Tags parts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /parts/export [get]
func (h *PartsHandler) Export(c *gin.Context) {
	in, ok := bindPartsSearch(c)
	if !ok {
		return
	}

	result, err := h.partsService.Search(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := h.exportService.PartsWorkbook(result)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.Attachment(c, service.PartsFilename, service.XLSXContentType, buf.Bytes())
}

// Models suggests catalog models for autocomplete
// @Summary Model autocomplete
// @Tags parts
// @Produce json
// @Param query query string false "part of a model name"
// @Success 200 {object} response.APIResponse
// @Router /parts/models [get]
func (h *PartsHandler) Models(c *gin.Context) {
	var req request.ModelQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	models, err := h.partsService.Models(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Models retrieved successfully", gin.H{"models": models})
}

func bindPartsSearch(c *gin.Context) (service.PartsSearchInput, bool) {
	var req request.PartsSearchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "model and a numeric year are required")
		return service.PartsSearchInput{}, false
	}

	in := service.PartsSearchInput{
		Model:             req.Model,
		Year:              req.Year,
		EngineCode:        req.EngineCode,
		MinOpportunity:    req.MinOpportunity,
		ExcludeMajorUnits: req.ExcludeMajorUnits,
	}
	if req.MinPrice != "" {
		price, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			response.BadRequest(c, "min_price must be a number")
			return service.PartsSearchInput{}, false
		}
		in.MinPrice = &price
	}
	return in, true
}
