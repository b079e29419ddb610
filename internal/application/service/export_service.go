package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of the generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const logTimestampLayout = "02.01.2006 15:04:05"

var logColumns = []interface{}{"Timestamp", "User", "Action", "Registration", "Stock Number", "vStockNo", "Location", "Status"}

var partsColumns = []interface{}{
	"Part", "IC Start Year", "IC End Year", "IC Description", "B Price", "Parts in Stock",
	"Backorders", "Parts Sold All", "Not Found 180 days", "Potential Profit", "Sales Speed", "Opportunity Score",
}

// PartsFilename is the download name of a parts search workbook
const PartsFilename = "parts_opportunity.xlsx"

// ExportService renders dashboard data as xlsx workbooks
type ExportService struct {
	loc *time.Location
}

// NewExportService creates a new export service. Log timestamps are rendered in loc.
func NewExportService(loc *time.Location) *ExportService {
	return &ExportService{loc: loc}
}

// StatsFilename names the workbook of a report, e.g. sales_by_user_2024-03-01_2024-03-31.xlsx
func StatsFilename(report *StatsReport) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", report.Source, report.StartDate, report.EndDate)
}

// LogsFilename names the action log workbook
func LogsFilename(now time.Time) string {
	return fmt.Sprintf("action_log_%s.xlsx", now.Format("2006-01-02"))
}

// StatsWorkbook writes the visible rows and the totals of a report
func (s *ExportService) StatsWorkbook(report *StatsReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statistics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	dimension := "Department"
	if report.Dimension == enum.StatsDimensionUser {
		dimension = "User"
	}

	rows := [][]interface{}{{report.Label}, {}}
	if report.Mode == enum.StatsModeParts {
		rows = append(rows, []interface{}{dimension, "Parts Sold", fmt.Sprintf("Prior (%s - %s)", report.ComparisonStart, report.ComparisonEnd)})
		for _, r := range report.PartsRows {
			rows = append(rows, []interface{}{r.Entity, r.Count, r.PriorCount})
		}
		if report.PartsTotals != nil {
			rows = append(rows, []interface{}{"Total", report.PartsTotals.Count, report.PartsTotals.PriorCount})
		}
	} else {
		rows = append(rows, []interface{}{dimension, "Total", "Total inc. VAT"})
		for _, r := range report.SalesRows {
			rows = append(rows, []interface{}{r.Entity, r.Total, r.TotalWithVAT})
		}
		if report.SalesTotals != nil {
			rows = append(rows, []interface{}{"Total", report.SalesTotals.Total, report.SalesTotals.TotalWithVAT})
		}
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 3, 3); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, len(rows), 3); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "C", 24); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// LogsWorkbook writes every action log entry
func (s *ExportService) LogsWorkbook(logs []entity.ActionLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Action Log"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(logs)+1)
	rows = append(rows, logColumns)
	for _, l := range logs {
		rows = append(rows, []interface{}{
			l.Timestamp.In(s.loc).Format(logTimestampLayout),
			l.Username,
			l.Action,
			deref(l.RegNumber),
			deref(l.StockNumber),
			deref(l.VStockNo),
			deref(l.Location),
			l.Status,
		})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 1, len(logColumns)); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "H", 20); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// PartsWorkbook writes the ranked parts of a search
func (s *ExportService) PartsWorkbook(result *PartsSearchResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Parts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(result.Parts)+1)
	rows = append(rows, partsColumns)
	for _, p := range result.Parts {
		rows = append(rows, []interface{}{
			p.Part,
			p.ICStartYear,
			p.ICEndYear,
			p.ICDescription,
			p.BPrice.InexactFloat64(),
			p.InStock,
			p.Backorders,
			p.SoldAll,
			p.NotFound180,
			p.PotentialProfit.InexactFloat64(),
			p.SalesSpeed,
			p.OpportunityScore,
		})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 1, len(partsColumns)); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "D", 40); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
