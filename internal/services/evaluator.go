package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"tenderdesk/proposal-evaluator/internal/models"
)

// placeholder fills text fields the model left out, never null.
const placeholder = "—"

// EvaluatorService scores every proposal in a batch against the rubric and
// ranks the results. Documents are processed strictly sequentially; a
// failing document is excluded with a warning, never aborting the batch.
type EvaluatorService interface {
	Evaluate(ctx context.Context, docs []models.UploadedDocument, criteria []string) *models.EvaluationResult
}

type evaluatorService struct {
	normalizer    NormalizerService
	llm           LLMService
	translator    TranslatorService
	detector      DetectorService
	prompts       *PromptBuilder
	model         string
	maxTokens     int
	minTextLength int
	defaultLang   string
}

func NewEvaluatorService(
	normalizer NormalizerService,
	llm LLMService,
	translator TranslatorService,
	detector DetectorService,
	prompts *PromptBuilder,
	model string,
	maxTokens int,
	minTextLength int,
	defaultLang string,
) EvaluatorService {
	return &evaluatorService{
		normalizer:    normalizer,
		llm:           llm,
		translator:    translator,
		detector:      detector,
		prompts:       prompts,
		model:         model,
		maxTokens:     maxTokens,
		minTextLength: minTextLength,
		defaultLang:   defaultLang,
	}
}

type scoringPayload struct {
	Scores         []map[string]interface{} `json:"scores"`
	OverallComment interface{}              `json:"overall_comment"`
}

// Evaluate implements EvaluatorService.
func (e *evaluatorService) Evaluate(ctx context.Context, docs []models.UploadedDocument, criteria []string) *models.EvaluationResult {
	result := &models.EvaluationResult{
		Details: make(map[string][]models.CriterionScore),
	}

	for _, doc := range docs {
		log.Printf("🔍 Evaluating proposal: %s\n", doc.FileName)

		evaluation, warning := e.evaluateDocument(ctx, doc, criteria)
		if warning != "" {
			log.Printf("⚠️  %s\n", warning)
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		result.Ranked = append(result.Ranked, *evaluation)
		result.Details[doc.FileName] = evaluation.Scores
	}

	// Descending by overall; stable, so ties keep upload order.
	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return result.Ranked[i].Overall > result.Ranked[j].Overall
	})

	if len(result.Ranked) == 0 {
		result.Warnings = append(result.Warnings, "no proposals could be evaluated")
	}
	return result
}

func (e *evaluatorService) evaluateDocument(ctx context.Context, doc models.UploadedDocument, criteria []string) (*models.DocumentEvaluation, string) {
	normalized, err := e.normalizer.Normalize(doc.FilePath)
	if err != nil {
		return nil, fmt.Sprintf("%s: %v", doc.FileName, err)
	}

	text := normalized.PlainText()
	if utf8.RuneCountInString(strings.TrimSpace(text)) < e.minTextLength {
		return nil, fmt.Sprintf("%s: %v", doc.FileName, ErrEmptyOrShortText)
	}

	prompt := e.prompts.BuildScoringPrompt(e.criteriaForDocument(ctx, criteria, text), text)

	reply, err := e.llm.GenerateText(ctx, e.model, prompt, 0.3, e.maxTokens)
	if err != nil {
		return nil, fmt.Sprintf("%s: model call failed: %v", doc.FileName, err)
	}

	var payload scoringPayload
	if !DecodeJSON(reply, &payload) || len(payload.Scores) == 0 {
		return nil, fmt.Sprintf("%s: model did not return valid scores", doc.FileName)
	}

	scores := make([]models.CriterionScore, 0, len(payload.Scores))
	total := 0
	for _, raw := range payload.Scores {
		score := models.CriterionScore{
			Criterion:  stringField(raw, "criterion"),
			Score:      coerceScore(raw["score"]),
			AIQuestion: stringField(raw, "ai_question"),
			Reason:     stringField(raw, "reason"),
		}
		total += score.Score
		scores = append(scores, score)
	}

	return &models.DocumentEvaluation{
		FileName: doc.FileName,
		Overall:  float64(total) / float64(len(scores)) / 4.0,
		Comment:  stringValue(payload.OverallComment),
		Scores:   scores,
	}, ""
}

// criteriaForDocument translates the rubric into the document's detected
// language when it differs from the default. Detection and translation are
// both best-effort: on failure the criteria are used as-is.
func (e *evaluatorService) criteriaForDocument(ctx context.Context, criteria []string, text string) []string {
	lang, err := e.detector.Detect(text)
	if err != nil || lang == e.defaultLang {
		return criteria
	}

	log.Printf("🔤 Proposal detected as %q, translating criteria...\n", lang)
	translated, err := e.translator.TranslateCriteria(ctx, criteria, e.defaultLang, lang)
	if err != nil {
		log.Printf("⚠️  Criteria translation failed, using them as-is: %v\n", err)
		return criteria
	}
	return translated
}

// coerceScore turns whatever the model emitted into an integer score.
// Numeric values clamp into [1,4]; anything non-numeric is 0.
func coerceScore(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return clampScore(int(math.Round(n)))
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return clampScore(int(math.Round(f)))
		}
	}
	return 0
}

func clampScore(s int) int {
	if s < 1 {
		return 1
	}
	if s > 4 {
		return 4
	}
	return s
}

func stringField(m map[string]interface{}, key string) string {
	return stringValue(m[key])
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return placeholder
}
