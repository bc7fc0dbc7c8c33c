package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tenderdesk/proposal-evaluator/internal/config"
	"tenderdesk/proposal-evaluator/internal/services"
)

// Bulk-loads every PDF/DOCX in a directory into the vector store under one
// session ID, so a chat session can be pointed at a pre-indexed corpus.
//
// Usage: go run scripts/ingest_proposals.go <dir> <session-id>
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <proposals-dir> <session-id>", os.Args[0])
	}
	dir := os.Args[1]
	sessionID := os.Args[2]

	log.Println("🚀 Starting proposal ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	llmService, err := services.NewLLMService(cfg.Model.APIKey, cfg.Model.EmbeddingModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	normalizer := services.NewNormalizerService()
	ingestService := services.NewIngestService(llmService, vectorStore, services.NewTextChunker())

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Failed to read directory %s: %v", dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".pdf" && ext != ".docx" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		log.Printf("\n📄 Processing: %s", entry.Name())

		log.Printf("   📖 Extracting text...")
		doc, err := normalizer.Normalize(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		text := doc.PlainText()
		log.Printf("   ✅ Extracted %d pages, %d characters", len(doc.Pages), len(text))

		log.Printf("   🔄 Chunking, embedding and storing...")
		if err := ingestService.IngestDocument(ctx, sessionID, entry.Name(), text); err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some proposals failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All proposals ingested successfully!")
}
