package services

import (
	"context"
	"fmt"
	"log"
)

const (
	ingestChunkSize    = 1000
	ingestChunkOverlap = 200
)

// IngestService loads a proposal's text into the vector store so the chat
// assistant can retrieve it. One session's chunks replace the previous
// session's entirely.
type IngestService interface {
	IngestDocument(ctx context.Context, sessionID, fileName, text string) error
	ClearSession(ctx context.Context, sessionID string) error
}

type ingestService struct {
	llm     LLMService
	store   VectorStoreService
	chunker TextChunker
}

func NewIngestService(llm LLMService, store VectorStoreService, chunker TextChunker) IngestService {
	return &ingestService{
		llm:     llm,
		store:   store,
		chunker: chunker,
	}
}

// IngestDocument implements IngestService.
func (s *ingestService) IngestDocument(ctx context.Context, sessionID, fileName, text string) error {
	chunks := s.chunker.ChunkText(text, ingestChunkSize, ingestChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no text to ingest for %s", fileName)
	}

	for i, chunk := range chunks {
		embedding, err := s.llm.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of %s: %w", i+1, fileName, err)
		}
		if err := s.store.UpsertChunk(ctx, sessionID, fileName, chunk, embedding); err != nil {
			return fmt.Errorf("failed to store chunk %d of %s: %w", i+1, fileName, err)
		}
	}

	log.Printf("✅ Ingested %d chunks from %s\n", len(chunks), fileName)
	return nil
}

// ClearSession implements IngestService.
func (s *ingestService) ClearSession(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}
