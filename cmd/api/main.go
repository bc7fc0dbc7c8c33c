package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tenderdesk/proposal-evaluator/internal/config"
	"tenderdesk/proposal-evaluator/internal/handlers"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	normalizer := services.NewNormalizerService()
	criteriaService := services.NewCriteriaService()
	detector := services.NewDetectorService(cfg.Eval.DetectSampleSize)
	prompts := services.NewPromptBuilder(cfg.Eval.PromptCharBudget, cfg.Eval.DefaultLanguage)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	llmService, err := services.NewLLMService(cfg.Model.APIKey, cfg.Model.EmbeddingModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Core pipeline services
	translator := services.NewTranslatorService(
		llmService,
		prompts,
		cfg.Model.ScoringModel,
		cfg.Model.MaxOutputTokens,
		cfg.Eval.DefaultLanguage,
		cfg.TranslationCachePath(),
	)
	evaluator := services.NewEvaluatorService(
		normalizer,
		llmService,
		translator,
		detector,
		prompts,
		cfg.Model.ScoringModel,
		cfg.Model.MaxOutputTokens,
		cfg.Eval.MinTextLength,
		cfg.Eval.DefaultLanguage,
	)
	analyzer := services.NewAnalyzerService(
		llmService,
		prompts,
		cfg.Model.ScoringModel,
		cfg.Model.MaxOutputTokens,
	)
	ingestService := services.NewIngestService(llmService, vectorStore, services.NewTextChunker())
	chatService := services.NewChatService(llmService, vectorStore, prompts, cfg.Model.ChatModel)
	log.Println("✅ Evaluation pipeline initialized")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		sessionRepo,
		storageService,
		criteriaService,
		normalizer,
		ingestService,
		cfg.Storage.MaxFileSize,
	)
	evaluateHandler := handlers.NewEvaluateHandler(sessionRepo, evaluator)
	sectionHandler := handlers.NewSectionHandler(sessionRepo, normalizer, analyzer)
	chatHandler := handlers.NewChatHandler(sessionRepo, chatService)
	translateHandler := handlers.NewTranslateHandler(sessionRepo, normalizer, translator)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Proposal Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/session", uploadHandler.HandleStartSession)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Get("/results", evaluateHandler.HandleResults)
	api.Post("/sections", sectionHandler.HandleAnalyze)
	api.Get("/sections", sectionHandler.HandleGetSections)
	api.Get("/sections/download", sectionHandler.HandleDownloadSection)
	api.Post("/chat", chatHandler.HandleChat)
	api.Post("/translate", translateHandler.HandleTranslate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Proposal Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/session",
				"POST /api/v1/evaluate",
				"GET /api/v1/results",
				"POST /api/v1/sections",
				"GET /api/v1/sections",
				"GET /api/v1/sections/download",
				"POST /api/v1/chat",
				"POST /api/v1/translate",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
