package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCriteriaWorkbook(t *testing.T, cells []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, cell := range cells {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, axis, cell))
	}

	path := filepath.Join(t.TempDir(), "criteria.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseCriteriaFile_FirstColumn(t *testing.T) {
	path := writeCriteriaWorkbook(t, []string{
		"Technical approach",
		"Team experience",
		"Pricing realism",
	})

	criteria, err := NewCriteriaService().ParseCriteriaFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Technical approach", "Team experience", "Pricing realism"}, criteria)
}

func TestParseCriteriaFile_SkipsHeaderRow(t *testing.T) {
	path := writeCriteriaWorkbook(t, []string{
		"المعايير",
		"جودة المنهجية",
		"خبرة الفريق",
	})

	criteria, err := NewCriteriaService().ParseCriteriaFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"جودة المنهجية", "خبرة الفريق"}, criteria)
}

func TestParseCriteriaFile_SkipsBlankCells(t *testing.T) {
	path := writeCriteriaWorkbook(t, []string{
		"Criterion",
		"First",
		"   ",
		"Second",
	})

	criteria, err := NewCriteriaService().ParseCriteriaFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, criteria)
}

func TestParseCriteriaFile_EmptyWorkbookFails(t *testing.T) {
	path := writeCriteriaWorkbook(t, []string{"criteria"})

	_, err := NewCriteriaService().ParseCriteriaFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no criteria found")
}

func TestParseCriteriaFile_RejectsNonExcel(t *testing.T) {
	_, err := NewCriteriaService().ParseCriteriaFile("/tmp/criteria.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
