package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService builds the sales and parts statistics dashboard
type StatsService struct {
	statsRepo   repository.StatsRepository
	sessionRepo repository.SessionRepository
	orderStore  repository.OrderStore
	loc         *time.Location
	now         func() time.Time
	log         *zap.Logger
}

// NewStatsService creates a new statistics service. Named date filters are
// resolved against the current day in loc.
func NewStatsService(
	statsRepo repository.StatsRepository,
	sessionRepo repository.SessionRepository,
	orderStore repository.OrderStore,
	loc *time.Location,
	log *zap.Logger,
) *StatsService {
	return &StatsService{
		statsRepo:   statsRepo,
		sessionRepo: sessionRepo,
		orderStore:  orderStore,
		loc:         loc,
		now:         time.Now,
		log:         log,
	}
}

// StatsQuery selects one dashboard view
type StatsQuery struct {
	FilterType string
	StartDate  string
	EndDate    string
	Mode       enum.StatsMode
	Dimension  enum.StatsDimension
	// Excluded replaces the session's exclusions whenever ExcludedSet is true,
	// including when it is empty.
	Excluded    []string
	ExcludedSet bool
	SessionID   uuid.UUID
}

// SalesRowView is a sales row as rendered to clients
type SalesRowView struct {
	Entity       string  `json:"entity"`
	Total        float64 `json:"total"`
	TotalWithVAT float64 `json:"total_with_vat"`
}

// PartsRowView is a parts row as rendered to clients
type PartsRowView struct {
	Entity     string `json:"entity"`
	Count      int64  `json:"count"`
	PriorCount int64  `json:"prior_count"`
}

// SalesTotals sums the visible sales rows
type SalesTotals struct {
	Total        float64 `json:"total"`
	TotalWithVAT float64 `json:"total_with_vat"`
}

// PartsTotals sums the visible parts rows
type PartsTotals struct {
	Count      int64 `json:"count"`
	PriorCount int64 `json:"prior_count"`
}

// ChartData feeds the dashboard bar chart. PriorValues is only set in parts mode.
type ChartData struct {
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	PriorValues []float64 `json:"prior_values,omitempty"`
}

// StatsReport is the computed statistics for one query. Exactly one of the
// sales and parts row sets is populated, matching Mode.
type StatsReport struct {
	FilterType      string              `json:"filter_type"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	Label           string              `json:"label"`
	Mode            enum.StatsMode      `json:"mode"`
	Dimension       enum.StatsDimension `json:"dimension"`
	SalesRows       []SalesRowView      `json:"sales_rows,omitempty"`
	SalesTotals     *SalesTotals        `json:"sales_totals,omitempty"`
	PartsRows       []PartsRowView      `json:"parts_rows,omitempty"`
	PartsTotals     *PartsTotals        `json:"parts_totals,omitempty"`
	ComparisonStart string              `json:"comparison_start,omitempty"`
	ComparisonEnd   string              `json:"comparison_end,omitempty"`
	Chart           ChartData           `json:"chart"`
	Excluded        []string            `json:"excluded"`
	Range           daterange.Range     `json:"-"`
	Source          enum.StatsSource    `json:"-"`
}

// StatsDashboard is the report plus what the dashboard needs to build its
// exclusion and filter controls
type StatsDashboard struct {
	*StatsReport
	AllEntities []string `json:"all_entities"`
	FilterTypes []string `json:"filter_types"`
}

var filterTypes = []string{
	daterange.FilterToday,
	daterange.FilterYesterday,
	daterange.FilterThisMonth,
	daterange.FilterLastMonth,
	daterange.FilterCustom,
}

// BuildDashboard resolves the query, fetches and filters the aggregate and,
// in parts mode, joins the prior month's counts.
func (s *StatsService) BuildDashboard(ctx context.Context, q StatsQuery) (*StatsDashboard, error) {
	filterType := daterange.Normalize(q.FilterType)
	rng, err := daterange.Resolve(filterType, q.StartDate, q.EndDate, s.now().In(s.loc))
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidRange) {
			return nil, apperror.NewFieldError("date_range", err.Error())
		}
		return nil, err
	}

	source := enum.SelectStatsSource(q.Mode, q.Dimension)
	excluded, err := s.exclusions(ctx, q, source.Dimension())
	if err != nil {
		return nil, err
	}
	order := s.orderStore.Load(ctx)

	report := &StatsReport{
		FilterType: filterType,
		StartDate:  rng.Start.Format(daterange.DateLayout),
		EndDate:    rng.LastDay().Format(daterange.DateLayout),
		Label:      daterange.Label(filterType, rng),
		Mode:       source.Mode(),
		Dimension:  source.Dimension(),
		Excluded:   excluded,
		Range:      rng,
		Source:     source,
	}

	var allEntities []string
	if source.Mode() == enum.StatsModeParts {
		allEntities, err = s.fillParts(ctx, report, excluded, order)
	} else {
		allEntities, err = s.fillSales(ctx, report, excluded, order)
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("stats computed",
		zap.String("source", source.String()),
		zap.String("start", report.StartDate),
		zap.String("end", report.EndDate),
		zap.Int("entities", len(allEntities)),
		zap.Int("excluded", len(excluded)),
	)

	return &StatsDashboard{
		StatsReport: report,
		AllEntities: allEntities,
		FilterTypes: filterTypes,
	}, nil
}

// Report computes the statistics without the dashboard-only fields
func (s *StatsService) Report(ctx context.Context, q StatsQuery) (*StatsReport, error) {
	dashboard, err := s.BuildDashboard(ctx, q)
	if err != nil {
		return nil, err
	}
	return dashboard.StatsReport, nil
}

func (s *StatsService) exclusions(ctx context.Context, q StatsQuery, dimension enum.StatsDimension) ([]string, error) {
	if q.ExcludedSet || q.SessionID == uuid.Nil {
		return effectiveExclusions(q.Excluded, q.ExcludedSet, nil), nil
	}

	session, err := s.sessionRepo.FindByID(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return effectiveExclusions(nil, false, nil), nil
	}
	return effectiveExclusions(nil, false, session.Exclusions(dimension)), nil
}

type salesSum struct {
	total   decimal.Decimal
	withVAT decimal.Decimal
}

func sumSales(rows []repository.SalesRow) salesSum {
	var sum salesSum
	for _, r := range rows {
		sum.total = sum.total.Add(r.Total)
		sum.withVAT = sum.withVAT.Add(r.TotalWithVAT)
	}
	return sum
}

func (s *StatsService) fillSales(ctx context.Context, report *StatsReport, excluded, order []string) ([]string, error) {
	raw, err := s.statsRepo.SalesTotals(ctx, report.Source, report.Range)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", report.Source, err)
	}

	rows := filterAndOrder(raw, excluded, order)
	sum := sumSales(rows)

	report.SalesRows = make([]SalesRowView, 0, len(rows))
	report.Chart = ChartData{Labels: make([]string, 0, len(rows)), Values: make([]float64, 0, len(rows))}
	for _, r := range rows {
		report.SalesRows = append(report.SalesRows, SalesRowView{
			Entity:       r.Entity,
			Total:        r.Total.InexactFloat64(),
			TotalWithVAT: r.TotalWithVAT.InexactFloat64(),
		})
		report.Chart.Labels = append(report.Chart.Labels, r.Entity)
		report.Chart.Values = append(report.Chart.Values, r.Total.InexactFloat64())
	}
	report.SalesTotals = &SalesTotals{
		Total:        sum.total.InexactFloat64(),
		TotalWithVAT: sum.withVAT.InexactFloat64(),
	}

	return entityNames(raw), nil
}

func (s *StatsService) fillParts(ctx context.Context, report *StatsReport, excluded, order []string) ([]string, error) {
	raw, err := s.statsRepo.PartsCounts(ctx, report.Source, report.Range)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", report.Source, err)
	}

	prior := report.Range.ShiftMonths(-1)
	priorRows, err := s.statsRepo.PartsCounts(ctx, report.Source, prior)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for prior month: %w", report.Source, err)
	}
	report.ComparisonStart = prior.Start.Format(daterange.DateLayout)
	report.ComparisonEnd = prior.LastDay().Format(daterange.DateLayout)

	rows := filterAndOrder(attachPriorCounts(raw, priorRows), excluded, order)

	totals := &PartsTotals{}
	report.PartsRows = make([]PartsRowView, 0, len(rows))
	report.Chart = ChartData{
		Labels:      make([]string, 0, len(rows)),
		Values:      make([]float64, 0, len(rows)),
		PriorValues: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		totals.Count += r.Count
		totals.PriorCount += r.PriorCount
		report.PartsRows = append(report.PartsRows, PartsRowView{Entity: r.Entity, Count: r.Count, PriorCount: r.PriorCount})
		report.Chart.Labels = append(report.Chart.Labels, r.Entity)
		report.Chart.Values = append(report.Chart.Values, float64(r.Count))
		report.Chart.PriorValues = append(report.Chart.PriorValues, float64(r.PriorCount))
	}
	report.PartsTotals = totals

	return entityNames(raw), nil
}

// MonthlyDrilldown is one entity's per-month totals for a year
type MonthlyDrilldown struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Months []int     `json:"months"`
	Year   int       `json:"year"`
}

// DailyDrilldown is one entity's per-day totals for a month
type DailyDrilldown struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Year   int       `json:"year"`
	Month  int       `json:"month"`
}

// DrilldownQuery selects the entity and metric of a drill-down
type DrilldownQuery struct {
	Entity    string
	Year      int
	Month     int
	Mode      enum.StatsMode
	Dimension enum.StatsDimension
}

func (q DrilldownQuery) validate(withMonth bool) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(q.Entity) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "entity", Message: "entity is required"})
	}
	if q.Year < 1900 || q.Year > 9999 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "year must be between 1900 and 9999"})
	}
	if withMonth && (q.Month < 1 || q.Month > 12) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// MonthlyDrilldown returns the months of q.Year that have data. Months
// without data are left out rather than reported as zero.
func (s *StatsService) MonthlyDrilldown(ctx context.Context, q DrilldownQuery) (*MonthlyDrilldown, error) {
	if err := q.validate(false); err != nil {
		return nil, err
	}

	source := enum.SelectStatsSource(q.Mode, q.Dimension)
	totals, err := s.statsRepo.MonthlyTotals(ctx, source, strings.TrimSpace(q.Entity), q.Year)
	if err != nil {
		return nil, fmt.Errorf("fetch monthly %s: %w", source, err)
	}

	out := &MonthlyDrilldown{
		Labels: make([]string, 0, len(totals)),
		Values: make([]float64, 0, len(totals)),
		Months: make([]int, 0, len(totals)),
		Year:   q.Year,
	}
	for _, t := range totals {
		if t.Period < 1 || t.Period > 12 {
			continue
		}
		out.Labels = append(out.Labels, monthAbbrev(t.Period))
		out.Values = append(out.Values, t.Total.InexactFloat64())
		out.Months = append(out.Months, t.Period)
	}
	return out, nil
}

// DailyDrilldown returns the days of q.Year/q.Month that have data
func (s *StatsService) DailyDrilldown(ctx context.Context, q DrilldownQuery) (*DailyDrilldown, error) {
	if err := q.validate(true); err != nil {
		return nil, err
	}

	source := enum.SelectStatsSource(q.Mode, q.Dimension)
	totals, err := s.statsRepo.DailyTotals(ctx, source, strings.TrimSpace(q.Entity), q.Year, q.Month)
	if err != nil {
		return nil, fmt.Errorf("fetch daily %s: %w", source, err)
	}

	last := daterange.DaysIn(q.Year, time.Month(q.Month), time.UTC)
	out := &DailyDrilldown{
		Labels: make([]string, 0, len(totals)),
		Values: make([]float64, 0, len(totals)),
		Year:   q.Year,
		Month:  q.Month,
	}
	for _, t := range totals {
		if t.Period < 1 || t.Period > last {
			continue
		}
		out.Labels = append(out.Labels, fmt.Sprintf("%d %s", t.Period, monthAbbrev(q.Month)))
		out.Values = append(out.Values, t.Total.InexactFloat64())
	}
	return out, nil
}

func monthAbbrev(month int) string {
	return time.Month(month).String()[:3]
}

// Order returns the persisted entity order
func (s *StatsService) Order(ctx context.Context) []string {
	return s.orderStore.Load(ctx)
}

// SaveOrder replaces the persisted entity order
func (s *StatsService) SaveOrder(ctx context.Context, order []string) ([]string, error) {
	cleaned := cleanNames(order)
	if err := s.orderStore.Save(ctx, cleaned); err != nil {
		return nil, err
	}
	s.log.Info("stats order saved", zap.Int("entities", len(cleaned)))
	return cleaned, nil
}

// SaveExclusions stores the default exclusions of a dimension on the session
func (s *StatsService) SaveExclusions(ctx context.Context, sessionID uuid.UUID, dimension enum.StatsDimension, names []string) ([]string, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, apperror.ErrSessionExpired
	}

	cleaned := cleanNames(names)
	session.SetExclusions(dimension, cleaned)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return cleaned, nil
}
