package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderdesk/proposal-evaluator/internal/models"
)

func longBody(marker string) string {
	return marker + " " + strings.Repeat("proposal content ", 30)
}

func scoringReply(scores ...int) string {
	parts := make([]string, 0, len(scores))
	for i, s := range scores {
		parts = append(parts, fmt.Sprintf(
			`{"criterion": "c%d", "score": %d, "ai_question": "q", "reason": "r"}`, i+1, s))
	}
	return fmt.Sprintf(`{"scores": [%s], "overall_comment": "solid"}`, strings.Join(parts, ","))
}

func newTestEvaluator(normalizer NormalizerService, llm LLMService, translator TranslatorService, detector DetectorService) EvaluatorService {
	return NewEvaluatorService(
		normalizer,
		llm,
		translator,
		detector,
		NewPromptBuilder(20000, "ar"),
		"scoring-model",
		4096,
		200,
		"ar",
	)
}

func TestEvaluate_RanksDescendingByOverall(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/a.pdf": pdfDoc("a.pdf", longBody("a")),
		"/tmp/b.pdf": pdfDoc("b.pdf", longBody("b")),
	}}
	llm := &stubLLM{replies: []string{
		scoringReply(2, 3),
		scoringReply(4, 4),
	}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "a.pdf", FilePath: "/tmp/a.pdf"},
		{FileName: "b.pdf", FilePath: "/tmp/b.pdf"},
	}, []string{"c1", "c2"})

	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "b.pdf", result.Ranked[0].FileName)
	assert.InDelta(t, 1.0, result.Ranked[0].Overall, 1e-9)
	assert.Equal(t, "a.pdf", result.Ranked[1].FileName)
	assert.InDelta(t, 0.625, result.Ranked[1].Overall, 1e-9)
	assert.Empty(t, result.Warnings)
}

func TestEvaluate_TiesKeepUploadOrder(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/first.pdf":  pdfDoc("first.pdf", longBody("first")),
		"/tmp/second.pdf": pdfDoc("second.pdf", longBody("second")),
	}}
	llm := &stubLLM{replies: []string{
		scoringReply(3, 3),
		scoringReply(3, 3),
	}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "first.pdf", FilePath: "/tmp/first.pdf"},
		{FileName: "second.pdf", FilePath: "/tmp/second.pdf"},
	}, []string{"c1", "c2"})

	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "first.pdf", result.Ranked[0].FileName)
	assert.Equal(t, "second.pdf", result.Ranked[1].FileName)
}

func TestEvaluate_BadDocumentYieldsWarningNotFailure(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/good.pdf": pdfDoc("good.pdf", longBody("good")),
	}}
	llm := &stubLLM{replies: []string{scoringReply(4)}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "broken.xyz", FilePath: "/tmp/broken.xyz"},
		{FileName: "good.pdf", FilePath: "/tmp/good.pdf"},
	}, []string{"c1"})

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "good.pdf", result.Ranked[0].FileName)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "broken.xyz")
}

func TestEvaluate_ShortTextSkipped(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/thin.pdf": pdfDoc("thin.pdf", "barely anything"),
	}}
	llm := &stubLLM{replies: []string{scoringReply(4)}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "thin.pdf", FilePath: "/tmp/thin.pdf"},
	}, []string{"c1"})

	assert.Empty(t, result.Ranked)
	assert.Zero(t, llm.textCalls)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "thin.pdf")
}

func TestEvaluate_EmptyBatchWarns(t *testing.T) {
	evaluator := newTestEvaluator(
		&stubNormalizer{docs: map[string]*models.NormalizedDocument{}},
		&stubLLM{},
		&stubTranslator{},
		&stubDetector{lang: "ar"},
	)

	result := evaluator.Evaluate(context.Background(), nil, []string{"c1"})

	assert.Empty(t, result.Ranked)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no proposals could be evaluated")
}

func TestEvaluate_ScoreCoercion(t *testing.T) {
	reply := `{"scores": [
		{"criterion": "c1", "score": "3", "ai_question": "q", "reason": "r"},
		{"criterion": "c2", "score": 9, "ai_question": "q", "reason": "r"},
		{"criterion": "c3", "score": "n/a"}
	], "overall_comment": ""}`

	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/a.pdf": pdfDoc("a.pdf", longBody("a")),
	}}
	llm := &stubLLM{replies: []string{reply}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "a.pdf", FilePath: "/tmp/a.pdf"},
	}, []string{"c1", "c2", "c3"})

	require.Len(t, result.Ranked, 1)
	scores := result.Ranked[0].Scores
	require.Len(t, scores, 3)
	assert.Equal(t, 3, scores[0].Score)
	assert.Equal(t, 4, scores[1].Score)
	assert.Equal(t, 0, scores[2].Score)
	assert.Equal(t, "—", scores[2].AIQuestion)
	assert.Equal(t, "—", scores[2].Reason)
	assert.Equal(t, "—", result.Ranked[0].Comment)
}

func TestEvaluate_TranslatesCriteriaForForeignDocuments(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/a.pdf": pdfDoc("a.pdf", longBody("a")),
	}}
	llm := &stubLLM{replies: []string{scoringReply(4)}}
	translator := &stubTranslator{translated: []string{"translated criterion"}}
	evaluator := newTestEvaluator(normalizer, llm, translator, &stubDetector{lang: "en"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "a.pdf", FilePath: "/tmp/a.pdf"},
	}, []string{"المعيار الأول"})

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, 1, translator.criteriaCalls)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- translated criterion\n")
}

func TestEvaluate_TranslationFailureKeepsOriginalCriteria(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/a.pdf": pdfDoc("a.pdf", longBody("a")),
	}}
	llm := &stubLLM{replies: []string{scoringReply(4)}}
	translator := &stubTranslator{err: ErrTranslationFailure}
	evaluator := newTestEvaluator(normalizer, llm, translator, &stubDetector{lang: "en"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "a.pdf", FilePath: "/tmp/a.pdf"},
	}, []string{"original criterion"})

	require.Len(t, result.Ranked, 1)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- original criterion\n")
}

func TestEvaluate_UnparseableReplySkipsDocument(t *testing.T) {
	normalizer := &stubNormalizer{docs: map[string]*models.NormalizedDocument{
		"/tmp/a.pdf": pdfDoc("a.pdf", longBody("a")),
	}}
	llm := &stubLLM{replies: []string{"I cannot score this document."}}
	evaluator := newTestEvaluator(normalizer, llm, &stubTranslator{}, &stubDetector{lang: "ar"})

	result := evaluator.Evaluate(context.Background(), []models.UploadedDocument{
		{FileName: "a.pdf", FilePath: "/tmp/a.pdf"},
	}, []string{"c1"})

	assert.Empty(t, result.Ranked)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "a.pdf")
}
