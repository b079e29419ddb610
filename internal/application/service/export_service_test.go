package service

import (
	"testing"
	"time"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLogsWorkbook(t *testing.T) {
	reg := "AB12 CDE"
	logs := []entity.ActionLog{{
		Timestamp: time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC),
		Action:    entity.ActionSearch,
		Username:  "yard",
		RegNumber: &reg,
		Status:    entity.ActionStatusFound,
	}}

	buf, err := NewExportService(time.UTC).LogsWorkbook(logs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Action Log")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Timestamp", "User", "Action", "Registration", "Stock Number", "vStockNo", "Location", "Status"}, rows[0])
	assert.Equal(t, "07.03.2024 09:05:03", rows[1][0])
	assert.Equal(t, "AB12 CDE", rows[1][3])
	assert.Equal(t, "FOUND", rows[1][7])
}

func TestStatsWorkbook(t *testing.T) {
	report := &StatsReport{
		Label:       "Today (15/03/2024)",
		Mode:        enum.StatsModeSales,
		Dimension:   enum.StatsDimensionUser,
		SalesRows:   []SalesRowView{{Entity: "Alice", Total: 10, TotalWithVAT: 12}},
		SalesTotals: &SalesTotals{Total: 10, TotalWithVAT: 12},
		StartDate:   "2024-03-15",
		EndDate:     "2024-03-15",
		Source:      enum.StatsSourceSalesByUser,
	}

	buf, err := NewExportService(time.UTC).StatsWorkbook(report)
	require.NoError(t, err)
	assert.Equal(t, "sales_by_user_2024-03-15_2024-03-15.xlsx", StatsFilename(report))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Statistics")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Today (15/03/2024)", rows[0][0])
	assert.Equal(t, []string{"User", "Total", "Total inc. VAT"}, rows[2])
	assert.Equal(t, []string{"Alice", "10", "12"}, rows[3])
	assert.Equal(t, "Total", rows[4][0])
}

func TestPartsWorkbook(t *testing.T) {
	result := &PartsSearchResult{
		Model: "Focus",
		Year:  2012,
		Parts: []PartOpportunity{Score(&entity.CatalogPart{
			Part:        "DOOR MIRROR",
			ICStartYear: 2011,
			ICEndYear:   2014,
			BPrice:      decimal.NewFromInt(40),
			InStock:     1,
			Backorders:  2,
			SoldAll:     6,
			NotFound180: 3,
		})},
	}

	buf, err := NewExportService(time.UTC).PartsWorkbook(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Parts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Part", rows[0][0])
	assert.Equal(t, "Opportunity Score", rows[0][11])
	assert.Equal(t, "DOOR MIRROR", rows[1][0])
	assert.Equal(t, "200", rows[1][9])
	assert.Equal(t, "600", rows[1][11])
}
