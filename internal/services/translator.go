package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// TranslatorService is the translation collaborator. Full-document
// translation is content-addressed against a durable on-disk cache so an
// identical input never pays for a second model call; criteria translation
// is a one-shot list translation.
type TranslatorService interface {
	TranslateDocument(ctx context.Context, text string) (string, error)
	TranslateCriteria(ctx context.Context, criteria []string, sourceLang, targetLang string) ([]string, error)
}

type translatorService struct {
	llm        LLMService
	prompts    *PromptBuilder
	model      string
	maxTokens  int
	targetLang string
	cachePath  string
	mu         sync.Mutex
}

func NewTranslatorService(llm LLMService, prompts *PromptBuilder, model string, maxTokens int, targetLang, cachePath string) TranslatorService {
	return &translatorService{
		llm:        llm,
		prompts:    prompts,
		model:      model,
		maxTokens:  maxTokens,
		targetLang: targetLang,
		cachePath:  cachePath,
	}
}

// TranslateDocument implements TranslatorService. Cache hits cost nothing;
// misses are written through immediately. Entries are never evicted.
func (t *translatorService) TranslateDocument(ctx context.Context, text string) (string, error) {
	digest := contentDigest(text)

	t.mu.Lock()
	defer t.mu.Unlock()

	cache := t.loadCache()
	if translated, ok := cache[digest]; ok {
		return translated, nil
	}

	prompt := t.prompts.BuildTranslationPrompt(text, t.targetLang)
	translated, err := t.llm.GenerateText(ctx, t.model, prompt, 0.3, t.maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailure, err)
	}

	cache[digest] = translated
	if err := t.saveCache(cache); err != nil {
		log.Printf("⚠️  Failed to persist translation cache: %v\n", err)
	}
	return translated, nil
}

// TranslateCriteria implements TranslatorService. The criteria come back as
// a JSON array in the original order; any shape mismatch is a
// TranslationFailure and the caller keeps the untranslated list.
func (t *translatorService) TranslateCriteria(ctx context.Context, criteria []string, sourceLang, targetLang string) ([]string, error) {
	if len(criteria) == 0 {
		return criteria, nil
	}

	prompt := t.prompts.BuildCriteriaTranslationPrompt(criteria, sourceLang, targetLang)
	reply, err := t.llm.GenerateText(ctx, t.model, prompt, 0.3, t.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailure, err)
	}

	var translated []string
	if !DecodeJSON(reply, &translated) || len(translated) != len(criteria) {
		return nil, fmt.Errorf("%w: model did not return %d translated criteria", ErrTranslationFailure, len(criteria))
	}
	return translated, nil
}

// loadCache reads the whole cache file on every lookup. At this scale a
// full read beats partial-read bookkeeping.
func (t *translatorService) loadCache() map[string]string {
	cache := map[string]string{}
	data, err := os.ReadFile(t.cachePath)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Printf("⚠️  Corrupt translation cache, starting fresh: %v\n", err)
		return map[string]string{}
	}
	return cache
}

func (t *translatorService) saveCache(cache map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(t.cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(t.cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func contentDigest(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
