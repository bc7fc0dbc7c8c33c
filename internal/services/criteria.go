package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CriteriaService reads the scoring rubric out of an uploaded workbook:
// first sheet, first column, one criterion per row.
type CriteriaService interface {
	ParseCriteriaFile(filePath string) ([]string, error)
}

type criteriaService struct{}

func NewCriteriaService() CriteriaService {
	return &criteriaService{}
}

func (c *criteriaService) ParseCriteriaFile(filePath string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("%w: criteria file must be an Excel workbook, got %s", ErrUnsupportedFormat, ext)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open criteria workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("criteria workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria rows: %w", err)
	}

	var criteria []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 && isCriteriaHeader(cell) {
			continue
		}
		criteria = append(criteria, cell)
	}

	if len(criteria) == 0 {
		return nil, fmt.Errorf("no criteria found in workbook")
	}
	return criteria, nil
}

func isCriteriaHeader(cell string) bool {
	switch strings.ToLower(cell) {
	case "criterion", "criteria", "المعيار", "المعايير":
		return true
	}
	return false
}
