package services

import (
	"context"
	"errors"
	"fmt"

	"tenderdesk/proposal-evaluator/internal/models"
)

// stubLLM returns canned replies keyed by call order and counts how many
// text generations happened.
type stubLLM struct {
	replies   []string
	err       error
	textCalls int
	prompts   []string
}

func (s *stubLLM) GenerateText(_ context.Context, _, prompt string, _ float32, _ int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.textCalls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("stubLLM: no replies configured")
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func (s *stubLLM) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// stubNormalizer serves pre-built documents keyed by file path.
type stubNormalizer struct {
	docs map[string]*models.NormalizedDocument
}

func (s *stubNormalizer) Normalize(filePath string) (*models.NormalizedDocument, error) {
	doc, ok := s.docs[filePath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
	return doc, nil
}

// stubDetector always reports the same language.
type stubDetector struct {
	lang string
	err  error
}

func (s *stubDetector) Detect(string) (string, error) {
	return s.lang, s.err
}

// stubTranslator records criteria-translation calls.
type stubTranslator struct {
	criteriaCalls int
	translated    []string
	err           error
}

func (s *stubTranslator) TranslateDocument(_ context.Context, text string) (string, error) {
	return text, nil
}

func (s *stubTranslator) TranslateCriteria(_ context.Context, criteria []string, _, _ string) ([]string, error) {
	s.criteriaCalls++
	if s.err != nil {
		return nil, s.err
	}
	if s.translated != nil {
		return s.translated, nil
	}
	return criteria, nil
}

func pdfDoc(fileName, text string) *models.NormalizedDocument {
	return &models.NormalizedDocument{
		Kind:     models.KindPDF,
		FileName: fileName,
		Pages:    []models.Page{{Number: 1, Text: text}},
		Text:     text,
	}
}
