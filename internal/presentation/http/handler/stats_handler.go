package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yardops-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yardops-api/pkg/apperror"
)

// DashboardPath is where the exclusion form redirects to
const DashboardPath = "/api/v1/dashboard/stats"

// StatsHandler handles the statistics dashboard endpoints
type StatsHandler struct {
	statsService  StatsUseCase
	exportService *service.ExportService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService StatsUseCase, exportService *service.ExportService) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		exportService: exportService,
	}
}

func (h *StatsHandler) bindQuery(c *gin.Context) (service.StatsQuery, error) {
	var req request.StatsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		return service.StatsQuery{}, apperror.NewBadRequestError("Invalid query parameters")
	}

	excluded, excludedSet := c.GetQueryArray("excluded")
	return service.StatsQuery{
		FilterType:  req.Filter,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Mode:        enum.ParseStatsMode(req.Mode),
		Dimension:   enum.ParseStatsDimension(req.Dimension),
		Excluded:    excluded,
		ExcludedSet: excludedSet,
		SessionID:   GetSessionID(c),
	}, nil
}

// Dashboard returns the full dashboard payload
// @Summary Statistics dashboard
// @Tags stats
// @Produce json
// @Param filter query string false "today, yesterday, this_month, last_month or custom"
// @Param start_date query string false "YYYY-MM-DD, custom filter only"
// @Param end_date query string false "YYYY-MM-DD inclusive, custom filter only"
// @Param mode query string false "sales or parts"
// @Param dimension query string false "department or user"
// @Param excluded query []string false "entities to hide; replaces the session default when present"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /dashboard/stats [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	q, err := h.bindQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	dashboard, err := h.statsService.BuildDashboard(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// Stats returns the computed statistics without the dashboard-only fields
// @Summary Statistics
// @Tags stats
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	q, err := h.bindQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.statsService.Report(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistics retrieved successfully", report)
}

// Export downloads the current statistics as a spreadsheet
// @Summary Export statistics
// @Tags stats
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	q, err := h.bindQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.statsService.Report(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := h.exportService.StatsWorkbook(report)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.Attachment(c, service.StatsFilename(report), service.XLSXContentType, buf.Bytes())
}

// GetOrder returns the persisted entity order
// @Summary Get entity order
// @Tags stats
// @Produce json
// @Router /stats/order [get]
func (h *StatsHandler) GetOrder(c *gin.Context) {
	response.OK(c, "Order retrieved successfully", h.statsService.Order(c.Request.Context()))
}

// SaveOrder replaces the persisted entity order. The body must be a JSON
// array of strings.
// @Summary Save entity order
// @Tags stats
// @Accept json
// @Produce json
// @Param request body []string true "Entity names in display order"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /stats/order [post]
func (h *StatsHandler) SaveOrder(c *gin.Context) {
	var order []string
	if err := c.ShouldBindJSON(&order); err != nil || order == nil {
		response.BadRequest(c, "Order must be a JSON array of strings")
		return
	}

	saved, err := h.statsService.SaveOrder(c.Request.Context(), order)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, "Order saved successfully", saved)
}

// SaveExclusions stores the session's default exclusions and sends the
// browser back to the dashboard
// @Summary Save session exclusions
// @Tags stats
// @Accept x-www-form-urlencoded
// @Param dimension formData string false "department or user"
// @Param excluded formData []string false "entities to hide"
// @Success 303
// @Router /stats/exclusions [post]
func (h *StatsHandler) SaveExclusions(c *gin.Context) {
	var req request.SaveExclusionsRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}

	dimension := enum.ParseStatsDimension(req.Dimension)
	if _, err := h.statsService.SaveExclusions(c.Request.Context(), GetSessionID(c), dimension, req.Excluded); err != nil {
		response.Error(c, err)
		return
	}

	target := DashboardPath
	if params := viewParams(req.Filter, req.StartDate, req.EndDate, req.Mode, req.Dimension); len(params) > 0 {
		target += "?" + params.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func bindDrilldown(c *gin.Context) (service.DrilldownQuery, error) {
	var req request.DrilldownQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		return service.DrilldownQuery{}, apperror.NewBadRequestError("Invalid query parameters")
	}
	return service.DrilldownQuery{
		Entity:    req.Entity,
		Year:      req.Year,
		Month:     req.Month,
		Mode:      enum.ParseStatsMode(req.Mode),
		Dimension: enum.ParseStatsDimension(req.Dimension),
	}, nil
}

// Monthly returns one entity's per-month totals for a year
// @Summary Monthly drill-down
// @Tags stats
// @Produce json
// @Param entity query string true "department or user name"
// @Param year query int true "calendar year"
// @Router /stats/monthly [get]
func (h *StatsHandler) Monthly(c *gin.Context) {
	q, err := bindDrilldown(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.statsService.MonthlyDrilldown(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly totals retrieved successfully", out)
}

// Daily returns one entity's per-day totals for a month
// @Summary Daily drill-down
// @Tags stats
// @Produce json
// @Param entity query string true "department or user name"
// @Param year query int true "calendar year"
// @Param month query int true "1-12"
// @Router /stats/daily [get]
func (h *StatsHandler) Daily(c *gin.Context) {
	q, err := bindDrilldown(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.statsService.DailyDrilldown(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily totals retrieved successfully", out)
}
