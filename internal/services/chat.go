package services

import (
	"context"
	"fmt"
	"log"
)

const (
	chatContextLimit = 5
	chatMaxTokens    = 512
	chatTemperature  = 0.4
)

// ChatService answers free-form questions about the current session's
// proposals, grounding the smaller/faster model on retrieved chunks.
type ChatService interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
}

type chatService struct {
	llm     LLMService
	store   VectorStoreService
	prompts *PromptBuilder
	model   string
}

func NewChatService(llm LLMService, store VectorStoreService, prompts *PromptBuilder, model string) ChatService {
	return &chatService{
		llm:     llm,
		store:   store,
		prompts: prompts,
		model:   model,
	}
}

// Ask implements ChatService.
func (c *chatService) Ask(ctx context.Context, sessionID, question string) (string, error) {
	embedding, err := c.llm.GenerateEmbedding(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := c.store.SearchSession(ctx, sessionID, embedding, chatContextLimit)
	if err != nil {
		// Retrieval is an enrichment; the chat still works without it.
		log.Printf("⚠️  Context retrieval failed, answering without excerpts: %v\n", err)
		results = nil
	}

	prompt := c.prompts.BuildChatPrompt(FormatChatContext(results), question)

	answer, err := c.llm.GenerateText(ctx, c.model, prompt, chatTemperature, chatMaxTokens)
	if err != nil {
		return "", fmt.Errorf("chat model call failed: %w", err)
	}
	return answer, nil
}
