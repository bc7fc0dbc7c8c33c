package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderdesk/proposal-evaluator/internal/models"
)

func TestBuildScoringPrompt_ListsCriteriaAsBullets(t *testing.T) {
	pb := NewPromptBuilder(20000, "ar")
	prompt := pb.BuildScoringPrompt([]string{"Technical approach", "Team experience"}, "proposal body")

	assert.Contains(t, prompt, "- Technical approach\n")
	assert.Contains(t, prompt, "- Team experience\n")
	assert.Contains(t, prompt, "proposal body")
	assert.Contains(t, prompt, `"overall_comment"`)
	assert.Contains(t, prompt, `ISO 639-1 code is "ar"`)
}

func TestBuildScoringPrompt_ClipsDocumentText(t *testing.T) {
	pb := NewPromptBuilder(50, "en")
	longText := strings.Repeat("x", 200)
	prompt := pb.BuildScoringPrompt([]string{"c"}, longText)

	assert.Contains(t, prompt, strings.Repeat("x", 50))
	assert.NotContains(t, prompt, strings.Repeat("x", 51))
}

func TestBuildSectioningPrompt_PDFInterleavesPageMarkers(t *testing.T) {
	pb := NewPromptBuilder(20000, "en")
	doc := &models.NormalizedDocument{
		Kind:     models.KindPDF,
		FileName: "bid.pdf",
		Pages: []models.Page{
			{Number: 1, Text: "introduction text"},
			{Number: 2, Text: "methodology text"},
		},
	}

	prompt := pb.BuildSectioningPrompt(doc)

	first := strings.Index(prompt, "[[PAGE:1]]")
	second := strings.Index(prompt, "[[PAGE:2]]")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, prompt, "introduction text")
	assert.Contains(t, prompt, "methodology text")
	assert.Contains(t, prompt, "start_page")
}

func TestBuildSectioningPrompt_DOCXHasNoPageMarkers(t *testing.T) {
	pb := NewPromptBuilder(20000, "en")
	doc := &models.NormalizedDocument{
		Kind:     models.KindDOCX,
		FileName: "bid.docx",
		Text:     "flat document text",
	}

	prompt := pb.BuildSectioningPrompt(doc)

	assert.NotContains(t, prompt, "[[PAGE:")
	assert.Contains(t, prompt, "flat document text")
	assert.Contains(t, prompt, `"start_page": 1`)
}

func TestBuildCriteriaTranslationPrompt(t *testing.T) {
	pb := NewPromptBuilder(20000, "ar")
	prompt := pb.BuildCriteriaTranslationPrompt([]string{"جودة المنهجية"}, "ar", "en")

	assert.Contains(t, prompt, `code "ar"`)
	assert.Contains(t, prompt, `code "en"`)
	assert.Contains(t, prompt, "- جودة المنهجية\n")
	assert.Contains(t, prompt, "JSON array")
}

func TestClipRunes_MultibyteSafe(t *testing.T) {
	text := "عرض فني ومالي"
	clipped := clipRunes(text, 6)

	assert.Equal(t, 6, len([]rune(clipped)))
	assert.Equal(t, "عرض فن", clipped)
}

func TestFormatChatContext(t *testing.T) {
	assert.Equal(t, "No relevant excerpts found.", FormatChatContext(nil))

	out := FormatChatContext([]SearchResult{
		{FileName: "a.pdf", Score: 0.91, Text: "alpha"},
		{FileName: "b.pdf", Score: 0.73, Text: "beta"},
	})
	assert.Contains(t, out, "Excerpt 1 (a.pdf, score 0.91)")
	assert.Contains(t, out, "Excerpt 2 (b.pdf, score 0.73)")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
}
