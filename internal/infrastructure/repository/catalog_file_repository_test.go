package repository

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const catalogCSV = `Model,Part,IC Start Year,IC End Year,IC Description,B Price,Parts in Stock,Backorders,Parts Sold All,Not Found 180 days
Focus,DOOR MIRROR,2011,2014,"electric, heated",40.50,1,2,6,3
Focus,ENGINE,2011.0,2014.0,engine code HWDA,900,,1,2,0
`

func TestParseCatalogCSV(t *testing.T) {
	parts, err := ParseCatalogCSV(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Len(t, parts, 2)

	mirror := parts[0]
	assert.Equal(t, "Focus", mirror.Model)
	assert.Equal(t, "electric, heated", mirror.ICDescription)
	assert.Equal(t, "40.5", mirror.BPrice.String())
	assert.Equal(t, int64(6), mirror.SoldAll)
	assert.Equal(t, int64(3), mirror.NotFound180)

	engine := parts[1]
	assert.Equal(t, 2011, engine.ICStartYear)
	assert.Equal(t, 2014, engine.ICEndYear)
	assert.Zero(t, engine.InStock)
	assert.True(t, engine.Fits(2014))
	assert.False(t, engine.Fits(2015))
}

func TestParseCatalogCSVErrors(t *testing.T) {
	_, err := ParseCatalogCSV(strings.NewReader("Model,Part\nFocus,MIRROR\n"))
	assert.ErrorContains(t, err, "missing column")

	bad := strings.Replace(catalogCSV, "40.50", "forty", 1)
	_, err = ParseCatalogCSV(strings.NewReader(bad))
	assert.ErrorContains(t, err, "row 2")
}

func TestLoadCatalogXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Model", "Part", "IC Start Year", "IC End Year", "IC Description", "B Price", "Parts in Stock", "Backorders", "Parts Sold All", "Not Found 180 days"},
		{"Fiesta", "LAMP", 2008, 2012, "", 25, 0, 1, 4, 0},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	parts, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "LAMP", parts[0].Part)
	assert.Equal(t, 2008, parts[0].ICStartYear)
	assert.Equal(t, int64(4), parts[0].SoldAll)
}

func TestCatalogFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogCSV), 0o600))

	parts, err := NewCatalogFileRepository(path, zap.NewNop()).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, parts, 2)

	_, err = NewCatalogFileRepository(filepath.Join(t.TempDir(), "missing.csv"), zap.NewNop()).All(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)
}
