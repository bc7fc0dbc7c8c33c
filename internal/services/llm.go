package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// LLMService is the model collaborator: a remote completion function plus
// an embedding endpoint. Model selection is per call so scoring can use the
// larger model while chat uses the faster one.
type LLMService interface {
	GenerateText(ctx context.Context, model, prompt string, temperature float32, maxOutputTokens int) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type llmService struct {
	client     *genai.Client
	embedModel string
}

// NewLLMService fails with ErrModelUnavailable when no API key is
// configured: every model-dependent feature is dead without it.
func NewLLMService(apiKey, embedModel string) (LLMService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrModelUnavailable
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &llmService{
		client:     client,
		embedModel: embedModel,
	}, nil
}

// GenerateText implements LLMService.
func (g *llmService) GenerateText(ctx context.Context, model, prompt string, temperature float32, maxOutputTokens int) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(maxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

// GenerateEmbedding implements LLMService.
func (g *llmService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Bound input size; the embedding model caps out well below a full
	// proposal.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
