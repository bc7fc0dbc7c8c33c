package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Model   ModelConfig
	Qdrant  QdrantConfig
	Storage StorageConfig
	Cache   CacheConfig
	Eval    EvalConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ModelConfig struct {
	APIKey          string
	ScoringModel    string
	ChatModel       string
	EmbeddingModel  string
	MaxOutputTokens int
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type CacheConfig struct {
	Dir string
}

type EvalConfig struct {
	PromptCharBudget int
	MinTextLength    int
	DetectSampleSize int
	DefaultLanguage  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Model: ModelConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			ScoringModel:    getEnv("SCORING_MODEL", "gemini-2.5-pro"),
			ChatModel:       getEnv("CHAT_MODEL", "gemini-2.5-flash"),
			EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			MaxOutputTokens: getEnvAsInt("MAX_OUTPUT_TOKENS", 4096),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "proposal_chunks"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 20971520),
		},
		Cache: CacheConfig{
			Dir: getEnv("TRANSLATION_CACHE_DIR", "./cache_translations"),
		},
		Eval: EvalConfig{
			PromptCharBudget: getEnvAsInt("PROMPT_CHAR_BUDGET", 20000),
			MinTextLength:    getEnvAsInt("MIN_TEXT_LENGTH", 200),
			DetectSampleSize: getEnvAsInt("DETECT_SAMPLE_SIZE", 1000),
			DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "ar"),
		},
	}
}

// TranslationCachePath is the single JSON file mapping content digests to
// translated text.
func (c *Config) TranslationCachePath() string {
	return filepath.Join(c.Cache.Dir, "translations.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
