package models

import "strings"

type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
)

// Page is one page of extracted PDF text, 1-indexed.
type Page struct {
	Number int    `json:"page_num"`
	Text   string `json:"text"`
}

// NormalizedDocument is the canonical in-memory shape of an uploaded file:
// page-tagged text for PDF, flat text for DOCX.
type NormalizedDocument struct {
	Kind     DocumentKind `json:"kind"`
	FileName string       `json:"file_name"`
	Pages    []Page       `json:"pages,omitempty"`
	Text     string       `json:"text,omitempty"`
}

// PlainText flattens the document to a single string, page texts joined in
// order for PDF.
func (d *NormalizedDocument) PlainText() string {
	if d.Kind == KindPDF {
		parts := make([]string, 0, len(d.Pages))
		for _, p := range d.Pages {
			parts = append(parts, p.Text)
		}
		return strings.Join(parts, "\n")
	}
	return d.Text
}

// UploadedDocument is a proposal file stored for the current session.
type UploadedDocument struct {
	FileName   string `json:"file_name"`
	StoredName string `json:"stored_name"`
	FilePath   string `json:"-"`
}
