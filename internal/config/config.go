package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Quota    QuotaConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Demo     DemoConfig
	Import   ImportConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	EmbedTafsirTopic   string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type QuotaConfig struct {
	DailyCeiling int
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	From       string
}

type AIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Temperature float64
	MaxTokens   int
	// Mode "off" disables every provider call; the service then runs on
	// lexical similarity and templated fallbacks only.
	Mode           string
	SimilarityMode string // "sample" skips embeddings even with a configured key
}

type DemoConfig struct {
	Enabled     bool
	AnswersPath string
}

type ImportConfig struct {
	SQLDumpPath  string
	BatchVerses  int
	BatchTafsirs int
	EmbedBatch   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "4000"),
			BaseURL:            getEnv("APP_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/mufessir.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			EmbedTafsirTopic:   getEnv("EMBED_TAFSIR_TOPIC_NAME", "EMBED_TAFSIR"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Quota: QuotaConfig{
			DailyCeiling: getEnvAsInt("FREE_DAILY_QUOTA", 3),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Mufessir"),
			From:       getEnv("EMAIL_FROM", "no-reply@mufessir.local"),
		},
		Ai: AIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EmbedModel:     getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
			Temperature:    getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			MaxTokens:      getEnvAsInt("OPENAI_MAX_TOKENS", 800),
			Mode:           getEnv("AI_MODE", "on"),
			SimilarityMode: getEnv("SIMILARITY_MODE", "live"),
		},
		Demo: DemoConfig{
			Enabled:     getEnv("DEMO_MODE", "false") == "true",
			AnswersPath: getEnv("DEMO_ANSWERS_PATH", "data/demo-answers.json"),
		},
		Import: ImportConfig{
			SQLDumpPath:  getEnv("SQL_DUMP_PATH", ""),
			BatchVerses:  getEnvAsInt("BATCH_VERSES", 500),
			BatchTafsirs: getEnvAsInt("BATCH_TAFSIRS", 50),
			EmbedBatch:   getEnvAsInt("EMBED_BATCH_SIZE", 50),
		},
	}
}

// AiDisabled reports whether every provider call should be skipped.
func (c *Config) AiDisabled() bool {
	return c.Ai.Mode == "off" || c.Ai.APIKey == ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
