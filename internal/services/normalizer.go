package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"tenderdesk/proposal-evaluator/internal/models"
)

// NormalizerService converts an uploaded file into its canonical in-memory
// shape: page-tagged text for PDF, flat text for DOCX.
type NormalizerService interface {
	Normalize(filePath string) (*models.NormalizedDocument, error)
}

type normalizerService struct{}

func NewNormalizerService() NormalizerService {
	return &normalizerService{}
}

func (n *normalizerService) Normalize(filePath string) (*models.NormalizedDocument, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return n.normalizePDF(filePath)
	case ".docx":
		return n.normalizeDOCX(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(filePath))
	}
}

func (n *normalizerService) normalizePDF(filePath string) (*models.NormalizedDocument, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", filepath.Base(filePath))
	}

	pages := make([]models.Page, 0, totalPage)
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)

		var text string
		if !page.V.IsNull() {
			// Extraction errors on a single page leave it blank; the
			// batch keeps going.
			text, _ = page.GetPlainText(nil)
		}

		pages = append(pages, models.Page{Number: pageIndex, Text: text})
	}

	return &models.NormalizedDocument{
		Kind:     models.KindPDF,
		FileName: filepath.Base(filePath),
		Pages:    pages,
	}, nil
}

func (n *normalizerService) normalizeDOCX(filePath string) (*models.NormalizedDocument, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()

	return &models.NormalizedDocument{
		Kind:     models.KindDOCX,
		FileName: filepath.Base(filePath),
		Text:     extractDocxText(content),
	}, nil
}

// extractDocxText pulls the text runs out of word/document.xml, one line
// per paragraph.
func extractDocxText(xmlContent string) string {
	var out strings.Builder
	for _, paragraph := range strings.Split(xmlContent, "</w:p>") {
		var line strings.Builder
		parts := strings.Split(paragraph, "<w:t")
		for i, part := range parts {
			if i == 0 {
				continue
			}
			start := strings.Index(part, ">")
			if start < 0 {
				continue
			}
			if end := strings.Index(part[start:], "</w:t>"); end >= 0 {
				line.WriteString(part[start+1 : start+end])
			}
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			out.WriteString(text)
			out.WriteString("\n")
		}
	}
	return strings.TrimSpace(out.String())
}
