package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tenderdesk/proposal-evaluator/internal/models"
)

// AnalyzerService segments one proposal into labeled sections with
// summaries and page anchors, preserving the model's emitted order.
type AnalyzerService interface {
	Analyze(ctx context.Context, doc *models.NormalizedDocument) ([]models.Section, error)
}

type analyzerService struct {
	llm       LLMService
	prompts   *PromptBuilder
	model     string
	maxTokens int
}

func NewAnalyzerService(llm LLMService, prompts *PromptBuilder, model string, maxTokens int) AnalyzerService {
	return &analyzerService{
		llm:       llm,
		prompts:   prompts,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Analyze implements AnalyzerService. When the model's reply yields no
// structured sections, the raw reply is preserved as a single "Full Text"
// section rather than discarded.
func (a *analyzerService) Analyze(ctx context.Context, doc *models.NormalizedDocument) ([]models.Section, error) {
	switch doc.Kind {
	case models.KindPDF, models.KindDOCX:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.FileName)
	}

	prompt := a.prompts.BuildSectioningPrompt(doc)

	reply, err := a.llm.GenerateText(ctx, a.model, prompt, 0.25, a.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("model call failed for %s: %w", doc.FileName, err)
	}

	var payload []map[string]interface{}
	if !DecodeJSON(reply, &payload) || len(payload) == 0 {
		return []models.Section{{
			Section:   "Full Text",
			Summary:   "General analysis",
			StartPage: 1,
			Content:   reply,
		}}, nil
	}

	sections := make([]models.Section, 0, len(payload))
	for _, raw := range payload {
		section := models.Section{
			Section:   stringField(raw, "section"),
			Summary:   stringField(raw, "summary"),
			StartPage: coerceStartPage(raw["start_page"]),
			Content:   stringField(raw, "content"),
		}
		// DOCX has no page boundaries, whatever the model claims.
		if doc.Kind == models.KindDOCX {
			section.StartPage = 1
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func coerceStartPage(v interface{}) int {
	switch n := v.(type) {
	case float64:
		if page := int(math.Round(n)); page >= 1 {
			return page
		}
	case string:
		if page, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && page >= 1 {
			return page
		}
	}
	return 1
}
