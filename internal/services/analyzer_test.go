package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderdesk/proposal-evaluator/internal/models"
)

func newTestAnalyzer(llm LLMService) AnalyzerService {
	return NewAnalyzerService(llm, NewPromptBuilder(20000, "ar"), "scoring-model", 4096)
}

func TestAnalyze_ParsesSections(t *testing.T) {
	llm := &stubLLM{replies: []string{`[
		{"section": "Introduction", "summary": "opening", "start_page": 1, "content": "intro text"},
		{"section": "Methodology", "summary": "approach", "start_page": 3, "content": "method text"}
	]`}}
	analyzer := newTestAnalyzer(llm)

	doc := &models.NormalizedDocument{
		Kind:     models.KindPDF,
		FileName: "bid.pdf",
		Pages: []models.Page{
			{Number: 1, Text: "intro text"},
			{Number: 2, Text: "more"},
			{Number: 3, Text: "method text"},
		},
	}

	sections, err := analyzer.Analyze(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Introduction", sections[0].Section)
	assert.Equal(t, 1, sections[0].StartPage)
	assert.Equal(t, "Methodology", sections[1].Section)
	assert.Equal(t, 3, sections[1].StartPage)
}

func TestAnalyze_DOCXForcesStartPageOne(t *testing.T) {
	llm := &stubLLM{replies: []string{`[
		{"section": "Team", "summary": "staff", "start_page": 7, "content": "team text"}
	]`}}
	analyzer := newTestAnalyzer(llm)

	doc := &models.NormalizedDocument{
		Kind:     models.KindDOCX,
		FileName: "bid.docx",
		Text:     "team text",
	}

	sections, err := analyzer.Analyze(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, 1, sections[0].StartPage)
}

func TestAnalyze_UnparseableReplyBecomesFullTextSection(t *testing.T) {
	llm := &stubLLM{replies: []string{"The document covers pricing and delivery milestones."}}
	analyzer := newTestAnalyzer(llm)

	sections, err := analyzer.Analyze(context.Background(), pdfDoc("bid.pdf", "body"))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Full Text", sections[0].Section)
	assert.Equal(t, "General analysis", sections[0].Summary)
	assert.Equal(t, 1, sections[0].StartPage)
	assert.Equal(t, "The document covers pricing and delivery milestones.", sections[0].Content)
}

func TestAnalyze_BadStartPageDefaultsToOne(t *testing.T) {
	llm := &stubLLM{replies: []string{`[
		{"section": "Scope", "summary": "s", "start_page": "unknown", "content": "text"},
		{"section": "Pricing", "summary": "p", "start_page": -2, "content": "text"}
	]`}}
	analyzer := newTestAnalyzer(llm)

	sections, err := analyzer.Analyze(context.Background(), pdfDoc("bid.pdf", "body"))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].StartPage)
	assert.Equal(t, 1, sections[1].StartPage)
}

func TestAnalyze_RejectsUnknownKind(t *testing.T) {
	analyzer := newTestAnalyzer(&stubLLM{})

	doc := &models.NormalizedDocument{FileName: "notes.txt"}
	_, err := analyzer.Analyze(context.Background(), doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
