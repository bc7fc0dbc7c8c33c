package services

import (
	"fmt"
	"strings"

	"tenderdesk/proposal-evaluator/internal/models"
)

// PromptBuilder assembles instruction strings for the model collaborator.
// Source text is clipped to charBudget runes before it is embedded in a
// prompt; the tail of an oversized document never reaches the model.
type PromptBuilder struct {
	charBudget   int
	responseLang string
}

func NewPromptBuilder(charBudget int, responseLang string) *PromptBuilder {
	if charBudget <= 0 {
		charBudget = 20000
	}
	return &PromptBuilder{
		charBudget:   charBudget,
		responseLang: responseLang,
	}
}

// BuildScoringPrompt creates the criteria-scoring prompt for one proposal.
func (pb *PromptBuilder) BuildScoringPrompt(criteria []string, documentText string) string {
	var bullets strings.Builder
	for _, c := range criteria {
		bullets.WriteString("- ")
		bullets.WriteString(c)
		bullets.WriteString("\n")
	}

	return fmt.Sprintf(`You are an expert evaluator of technical and commercial proposals.
Read the proposal text below and score it against each listed criterion.

For every criterion:
- assign a score from 1 to 4 (1 = poor, 4 = excellent)
- write the question you asked yourself to judge it (ai_question)
- explain the reasoning behind the score (reason)

After all criteria, add a sibling key "overall_comment" with general remarks
about the proposal as a whole.

Return ONLY valid JSON in this exact shape, no text outside it:
{
  "scores": [
    {
      "criterion": "criterion name",
      "score": 1-4,
      "ai_question": "the question the evaluator asked",
      "reason": "the reasoning behind the score"
    }
  ],
  "overall_comment": "general remarks about the whole proposal"
}

CRITERIA:
%s
PROPOSAL TEXT:
%s

%s`, bullets.String(), clipRunes(documentText, pb.charBudget), pb.responseLanguageRule())
}

// BuildSectioningPrompt creates the section-analysis prompt. The PDF
// variant interleaves [[PAGE:n]] markers so the model can infer each
// section's starting page; the DOCX variant pins start_page to 1.
func (pb *PromptBuilder) BuildSectioningPrompt(doc *models.NormalizedDocument) string {
	if doc.Kind == models.KindPDF {
		parts := make([]string, 0, len(doc.Pages))
		for _, p := range doc.Pages {
			parts = append(parts, fmt.Sprintf("[[PAGE:%d]]\n%s", p.Number, p.Text))
		}
		tagged := strings.Join(parts, "\n\n")

		return fmt.Sprintf(`Read the following proposal text, annotated with page markers of the form [[PAGE:n]].
Split it into its main sections (introduction, objectives, project understanding, methodology, execution plan, team, deliverables, conclusion, or whatever the document actually contains).

Return ONLY valid JSON, no text outside it:
[
  {
    "section": "section name",
    "summary": "short summary of the section",
    "start_page": page number where the section starts (infer it from the nearest preceding [[PAGE:n]] marker),
    "content": "the full section text verbatim, nothing cut or shortened; merge paragraphs that continue across consecutive pages"
  }
]

PAGE-TAGGED TEXT:
-----------------
%s

%s`, clipRunes(tagged, pb.charBudget), pb.responseLanguageRule())
	}

	return fmt.Sprintf(`Read the following proposal text and split it into its main sections (introduction, objectives, methodology, execution plan, team, deliverables, conclusion, or whatever the document actually contains).

Return ONLY valid JSON, no text outside it:
[
  {
    "section": "section name",
    "summary": "short summary of the section",
    "start_page": 1,
    "content": "the full section text verbatim, nothing cut or shortened"
  }
]

TEXT:
-----
%s

%s`, clipRunes(doc.Text, pb.charBudget), pb.responseLanguageRule())
}

// BuildTranslationPrompt creates the full-document translation prompt.
func (pb *PromptBuilder) BuildTranslationPrompt(text, targetLang string) string {
	return fmt.Sprintf(`Translate the following text into the language whose ISO 639-1 code is %q.
Translate faithfully and professionally, with no omission and no summarizing.
Return only the translated text.

%s`, targetLang, clipRunes(text, pb.charBudget))
}

// BuildCriteriaTranslationPrompt asks for the criteria list translated in
// order, as a JSON array of strings.
func (pb *PromptBuilder) BuildCriteriaTranslationPrompt(criteria []string, sourceLang, targetLang string) string {
	var bullets strings.Builder
	for _, c := range criteria {
		bullets.WriteString("- ")
		bullets.WriteString(c)
		bullets.WriteString("\n")
	}

	return fmt.Sprintf(`Translate each of the following evaluation criteria from the language with ISO 639-1 code %q into the language with ISO 639-1 code %q.
Return ONLY a JSON array of the translated strings, in the same order, one entry per criterion, no text outside it.

%s`, sourceLang, targetLang, bullets.String())
}

// BuildChatPrompt creates the conversational Q&A prompt, injecting
// retrieved proposal context ahead of the user's question.
func (pb *PromptBuilder) BuildChatPrompt(contextText, question string) string {
	return fmt.Sprintf(`You are a smart assistant specializing in analyzing and comparing tender proposals.
Answer the user's question using the excerpts below from the uploaded proposals. If the excerpts do not cover the question, say so instead of guessing.

PROPOSAL EXCERPTS:
%s

QUESTION:
%s

%s`, contextText, clipRunes(question, pb.charBudget), pb.responseLanguageRule())
}

func (pb *PromptBuilder) responseLanguageRule() string {
	return fmt.Sprintf("Write every response value in the language whose ISO 639-1 code is %q.", pb.responseLang)
}

// clipRunes truncates text to at most budget runes. Prefix truncation only;
// no summarization happens before submission.
func clipRunes(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget])
}

// FormatChatContext renders retrieved chunks the way the chat prompt
// expects them.
func FormatChatContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant excerpts found."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Excerpt %d (%s, score %.2f) ---\n%s",
			i+1, result.FileName, result.Score, strings.TrimSpace(result.Text)))
	}
	return strings.Join(parts, "\n\n")
}
