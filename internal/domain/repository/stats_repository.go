package repository

import (
	"context"

	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/shopspring/decimal"
)

// UnknownEntity labels sold parts whose department or user cannot be resolved
const UnknownEntity = "Unknown"

// SalesRow is one entity's monetary totals
type SalesRow struct {
	Entity       string
	Total        decimal.Decimal
	TotalWithVAT decimal.Decimal
}

// EntityName returns the department or user the row belongs to
func (r SalesRow) EntityName() string { return r.Entity }

// PartsRow is one entity's sold-part count and the count of the prior period
type PartsRow struct {
	Entity     string
	Count      int64
	PriorCount int64
}

// EntityName returns the department or user the row belongs to
func (r PartsRow) EntityName() string { return r.Entity }

// PeriodTotal is the metric total for one month or one day of a drill-down
type PeriodTotal struct {
	Period int
	Total  decimal.Decimal
}

// StatsRepository defines the read-only aggregate queries behind the statistics dashboard.
// Rows are returned sorted by entity name; an empty window yields an empty slice.
type StatsRepository interface {
	// SalesTotals sums invoice totals per entity within the range
	SalesTotals(ctx context.Context, source enum.StatsSource, r daterange.Range) ([]SalesRow, error)

	// PartsCounts counts sold parts per entity within the range
	PartsCounts(ctx context.Context, source enum.StatsSource, r daterange.Range) ([]PartsRow, error)

	// MonthlyTotals returns per-month totals of one entity for a calendar year
	MonthlyTotals(ctx context.Context, source enum.StatsSource, entity string, year int) ([]PeriodTotal, error)

	// DailyTotals returns per-day totals of one entity for a calendar month
	DailyTotals(ctx context.Context, source enum.StatsSource, entity string, year, month int) ([]PeriodTotal, error)
}

// OrderStore persists the custom display order of entities
type OrderStore interface {
	// Load returns the saved order, or an empty slice when nothing usable is stored
	Load(ctx context.Context) []string
	// Save replaces the saved order
	Save(ctx context.Context, order []string) error
}
