package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/yardops-api/internal/domain/enum"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/shopspring/decimal"
)

// statsQuery holds the SQL fragments of one aggregate source
type statsQuery struct {
	from      string
	filter    string
	entity    string
	date      string
	metric    string
	secondary string
}

var statsQueries = map[enum.StatsSource]statsQuery{
	enum.StatsSourceSalesByDepartment: {
		from:      "invoice i",
		filter:    "TRUE",
		entity:    "COALESCE(i.department_name, 'Unknown')",
		date:      "i.invoice_date",
		metric:    "COALESCE(SUM(i.total), 0)",
		secondary: "COALESCE(SUM(i.total + COALESCE(i.tax, 0)), 0)",
	},
	enum.StatsSourceSalesByUser: {
		from:      "invoice i LEFT JOIN sysuser u ON u.sysuser_id = i.sysuser_id",
		filter:    "TRUE",
		entity:    "COALESCE(u.shortname, 'Unknown')",
		date:      "i.invoice_date",
		metric:    "COALESCE(SUM(i.total), 0)",
		secondary: "COALESCE(SUM(i.total + COALESCE(i.tax, 0)), 0)",
	},
	enum.StatsSourcePartsByDepartment: {
		from:   "solditem s LEFT JOIN invoice i ON i.invoice_id = s.invoice_id",
		filter: "s.sold = TRUE",
		entity: "COALESCE(i.department_name, 'Unknown')",
		date:   "s.sold_date",
		metric: "COUNT(*)",
	},
	enum.StatsSourcePartsByUser: {
		from:   "solditem s LEFT JOIN invoice i ON i.invoice_id = s.invoice_id LEFT JOIN sysuser u ON u.sysuser_id = i.sysuser_id",
		filter: "s.sold = TRUE",
		entity: "COALESCE(u.shortname, 'Unknown')",
		date:   "s.sold_date",
		metric: "COUNT(*)",
	},
}

func queryFor(source enum.StatsSource) (statsQuery, error) {
	q, ok := statsQueries[source]
	if !ok {
		return statsQuery{}, fmt.Errorf("unknown stats source %d", source)
	}
	return q, nil
}

// groupedSQL aggregates per entity inside a date window
func (q statsQuery) groupedSQL() string {
	cols := q.entity + " AS entity, " + q.metric + " AS total"
	if q.secondary != "" {
		cols += ", " + q.secondary + " AS total_with_vat"
	}
	return fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s AND %s >= ? AND %s < ?
		GROUP BY 1
		ORDER BY 1`,
		cols, q.from, q.filter, q.date, q.date)
}

// periodSQL aggregates one entity per month or day inside a date window
func (q statsQuery) periodSQL(field string) string {
	return fmt.Sprintf(`
		SELECT CAST(EXTRACT(%s FROM %s) AS INTEGER) AS period, %s AS total
		FROM %s
		WHERE %s AND %s = ? AND %s >= ? AND %s < ?
		GROUP BY 1
		ORDER BY 1`,
		field, q.date, q.metric, q.from, q.filter, q.entity, q.date, q.date)
}

type statsRepository struct {
	provider database.Provider
}

// NewStatsRepository creates a new statistics repository
func NewStatsRepository(provider database.Provider) domainRepo.StatsRepository {
	return &statsRepository{provider: provider}
}

func (r *statsRepository) SalesTotals(ctx context.Context, source enum.StatsSource, rng daterange.Range) ([]domainRepo.SalesRow, error) {
	q, err := queryFor(source)
	if err != nil {
		return nil, err
	}
	if source.Mode() != enum.StatsModeSales {
		return nil, fmt.Errorf("%s is not a sales source", source)
	}

	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var scanned []struct {
		Entity       string          `gorm:"column:entity"`
		Total        decimal.Decimal `gorm:"column:total"`
		TotalWithVAT decimal.Decimal `gorm:"column:total_with_vat"`
	}
	if err := db.Raw(q.groupedSQL(), sqlDate(rng.Start), sqlDate(rng.End)).Scan(&scanned).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", source, err)
	}

	rows := make([]domainRepo.SalesRow, 0, len(scanned))
	for _, s := range scanned {
		rows = append(rows, domainRepo.SalesRow{Entity: s.Entity, Total: s.Total, TotalWithVAT: s.TotalWithVAT})
	}
	return rows, nil
}

func (r *statsRepository) PartsCounts(ctx context.Context, source enum.StatsSource, rng daterange.Range) ([]domainRepo.PartsRow, error) {
	q, err := queryFor(source)
	if err != nil {
		return nil, err
	}
	if source.Mode() != enum.StatsModeParts {
		return nil, fmt.Errorf("%s is not a parts source", source)
	}

	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var scanned []struct {
		Entity string `gorm:"column:entity"`
		Total  int64  `gorm:"column:total"`
	}
	if err := db.Raw(q.groupedSQL(), sqlDate(rng.Start), sqlDate(rng.End)).Scan(&scanned).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", source, err)
	}

	rows := make([]domainRepo.PartsRow, 0, len(scanned))
	for _, s := range scanned {
		rows = append(rows, domainRepo.PartsRow{Entity: s.Entity, Count: s.Total})
	}
	return rows, nil
}

func (r *statsRepository) MonthlyTotals(ctx context.Context, source enum.StatsSource, entity string, year int) ([]domainRepo.PeriodTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return r.periodTotals(ctx, source, "MONTH", entity, start, start.AddDate(1, 0, 0))
}

func (r *statsRepository) DailyTotals(ctx context.Context, source enum.StatsSource, entity string, year, month int) ([]domainRepo.PeriodTotal, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return r.periodTotals(ctx, source, "DAY", entity, start, start.AddDate(0, 1, 0))
}

func (r *statsRepository) periodTotals(ctx context.Context, source enum.StatsSource, field, entity string, start, end time.Time) ([]domainRepo.PeriodTotal, error) {
	q, err := queryFor(source)
	if err != nil {
		return nil, err
	}

	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var scanned []struct {
		Period int             `gorm:"column:period"`
		Total  decimal.Decimal `gorm:"column:total"`
	}
	if err := db.Raw(q.periodSQL(field), entity, sqlDate(start), sqlDate(end)).Scan(&scanned).Error; err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", source, field, err)
	}

	totals := make([]domainRepo.PeriodTotal, 0, len(scanned))
	for _, s := range scanned {
		totals = append(totals, domainRepo.PeriodTotal{Period: s.Period, Total: s.Total})
	}
	return totals, nil
}

// sqlDate renders a day as an untyped literal so Postgres compares it in
// the column's own type and no timezone conversion happens on the way.
func sqlDate(t time.Time) string {
	return t.Format(daterange.DateLayout)
}
