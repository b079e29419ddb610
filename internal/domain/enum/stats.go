package enum

import (
	"encoding/json"
	"strings"
)

// StatsMode is the metric aggregated by the statistics dashboard
type StatsMode string

const (
	StatsModeSales StatsMode = "sales"
	StatsModeParts StatsMode = "parts"
)

// ParseStatsMode maps "parts" (any case) to parts mode and anything else to sales
func ParseStatsMode(s string) StatsMode {
	if strings.EqualFold(strings.TrimSpace(s), string(StatsModeParts)) {
		return StatsModeParts
	}
	return StatsModeSales
}

func (m StatsMode) String() string {
	return string(m)
}

// StatsDimension is the grouping axis of the statistics dashboard
type StatsDimension string

const (
	StatsDimensionDepartment StatsDimension = "department"
	StatsDimensionUser       StatsDimension = "user"
)

// ParseStatsDimension maps "user" (any case) to the user dimension and anything else to department
func ParseStatsDimension(s string) StatsDimension {
	if strings.EqualFold(strings.TrimSpace(s), string(StatsDimensionUser)) {
		return StatsDimensionUser
	}
	return StatsDimensionDepartment
}

func (d StatsDimension) String() string {
	return string(d)
}

// StatsSource identifies which aggregate query feeds the dashboard
type StatsSource int

const (
	StatsSourceSalesByDepartment StatsSource = iota
	StatsSourceSalesByUser
	StatsSourcePartsByDepartment
	StatsSourcePartsByUser
)

// SelectStatsSource picks the aggregate for a mode and dimension pair
func SelectStatsSource(mode StatsMode, dimension StatsDimension) StatsSource {
	switch {
	case mode == StatsModeParts && dimension == StatsDimensionUser:
		return StatsSourcePartsByUser
	case mode == StatsModeParts:
		return StatsSourcePartsByDepartment
	case dimension == StatsDimensionUser:
		return StatsSourceSalesByUser
	default:
		return StatsSourceSalesByDepartment
	}
}

var statsSourceNames = [...]string{"sales_by_department", "sales_by_user", "parts_by_department", "parts_by_user"}

func (s StatsSource) String() string {
	if s < 0 || int(s) >= len(statsSourceNames) {
		return "unknown"
	}
	return statsSourceNames[s]
}

// Mode returns the metric the source aggregates
func (s StatsSource) Mode() StatsMode {
	if s == StatsSourcePartsByDepartment || s == StatsSourcePartsByUser {
		return StatsModeParts
	}
	return StatsModeSales
}

// Dimension returns the grouping axis of the source
func (s StatsSource) Dimension() StatsDimension {
	if s == StatsSourceSalesByUser || s == StatsSourcePartsByUser {
		return StatsDimensionUser
	}
	return StatsDimensionDepartment
}

func (s StatsSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
