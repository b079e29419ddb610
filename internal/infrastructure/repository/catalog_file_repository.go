package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Catalog column headers, matched case-insensitively
const (
	colModel         = "model"
	colPart          = "part"
	colICStartYear   = "ic start year"
	colICEndYear     = "ic end year"
	colICDescription = "ic description"
	colBPrice        = "b price"
	colInStock       = "parts in stock"
	colBackorders    = "backorders"
	colSoldAll       = "parts sold all"
	colNotFound180   = "not found 180 days"
)

var requiredCatalogColumns = []string{
	colModel, colPart, colICStartYear, colICEndYear, colICDescription,
	colBPrice, colInStock, colBackorders, colSoldAll, colNotFound180,
}

type catalogFileRepository struct {
	parts   []entity.CatalogPart
	loadErr error
}

// NewCatalogFileRepository loads the catalog from a .csv or .xlsx export once.
// A catalog that cannot be loaded is logged, and every read then reports the
// catalog as unavailable.
func NewCatalogFileRepository(path string, log *zap.Logger) domainRepo.CatalogRepository {
	parts, err := LoadCatalog(path)
	if err != nil {
		log.Warn("parts catalog not loaded", zap.String("path", path), zap.Error(err))
		return &catalogFileRepository{loadErr: err}
	}
	log.Info("parts catalog loaded", zap.String("path", path), zap.Int("rows", len(parts)))
	return &catalogFileRepository{parts: parts}
}

// NewCatalogRepository serves an already loaded catalog
func NewCatalogRepository(parts []entity.CatalogPart) domainRepo.CatalogRepository {
	return &catalogFileRepository{parts: parts}
}

func (r *catalogFileRepository) All(_ context.Context) ([]entity.CatalogPart, error) {
	if r.loadErr != nil {
		return nil, apperror.NewUnavailableError("Parts catalog is not loaded")
	}
	return r.parts, nil
}

// LoadCatalog reads a catalog file, picking the format from its extension
func LoadCatalog(path string) ([]entity.CatalogPart, error) {
	if path == "" {
		return nil, errors.New("catalog path not configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ParseCatalogXLSX(file)
	default:
		return ParseCatalogCSV(file)
	}
}

// ParseCatalogCSV reads a comma separated catalog with a header row
func ParseCatalogCSV(r io.Reader) ([]entity.CatalogPart, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv: %w", err)
	}
	return parseCatalogRecords(records)
}

// ParseCatalogXLSX reads the first sheet of a catalog workbook
func ParseCatalogXLSX(r io.Reader) ([]entity.CatalogPart, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("catalog workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet: %w", err)
	}
	return parseCatalogRecords(rows)
}

func parseCatalogRecords(records [][]string) ([]entity.CatalogPart, error) {
	if len(records) == 0 {
		return nil, errors.New("catalog has no header row")
	}

	idx := map[string]int{}
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredCatalogColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("catalog is missing column %q", col)
		}
	}

	parts := make([]entity.CatalogPart, 0, len(records)-1)
	for rowIndex, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		part, err := parseCatalogRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", rowIndex+2, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func parseCatalogRow(row []string, idx map[string]int) (entity.CatalogPart, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		part entity.CatalogPart
		err  error
	)
	part.Model = cell(colModel)
	part.Part = cell(colPart)
	part.ICDescription = cell(colICDescription)

	if part.ICStartYear, err = parseWhole(cell(colICStartYear)); err != nil {
		return part, fmt.Errorf("%s: %w", colICStartYear, err)
	}
	if part.ICEndYear, err = parseWhole(cell(colICEndYear)); err != nil {
		return part, fmt.Errorf("%s: %w", colICEndYear, err)
	}
	if raw := cell(colBPrice); raw != "" {
		if part.BPrice, err = decimal.NewFromString(raw); err != nil {
			return part, fmt.Errorf("%s: %w", colBPrice, err)
		}
	}

	counts := []struct {
		col string
		dst *int64
	}{
		{colInStock, &part.InStock},
		{colBackorders, &part.Backorders},
		{colSoldAll, &part.SoldAll},
		{colNotFound180, &part.NotFound180},
	}
	for _, c := range counts {
		n, err := parseWhole(cell(c.col))
		if err != nil {
			return part, fmt.Errorf("%s: %w", c.col, err)
		}
		*c.dst = int64(n)
	}
	return part, nil
}

// parseWhole accepts integers written as floats ("2012.0"); blank is zero
func parseWhole(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
