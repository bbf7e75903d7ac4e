package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Council  CouncilConfig
	Keys     APIKeys
	Events   EventConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtlpEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

// CouncilConfig selects the default panel plus the models used for synthesis
// and titling. Models are provider-prefixed (e.g. "openai/gpt-5.1").
type CouncilConfig struct {
	Models              []string
	ChairmanModel       string
	TitleModel          string
	QueryTimeoutSeconds int
	CatalogTTLSeconds   int
}

type APIKeys struct {
	OpenAI     string
	XAI        string
	Google     string
	OpenRouter string
}

type EventConfig struct {
	CouncilTurnTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8001"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtlpEndpoint:       getEnv("OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Council: CouncilConfig{
			Models: getEnvAsSlice("COUNCIL_MODELS", []string{
				"openai/gpt-5.1",
				"google/gemini-3-pro-preview",
				"anthropic/claude-sonnet-4.5",
				"x-ai/grok-4",
			}),
			ChairmanModel:       getEnv("CHAIRMAN_MODEL", "google/gemini-3-pro-preview"),
			TitleModel:          getEnv("TITLE_MODEL", "google/gemini-2.5-flash"),
			QueryTimeoutSeconds: getEnvAsInt("COUNCIL_QUERY_TIMEOUT_SECONDS", 120),
			CatalogTTLSeconds:   getEnvAsInt("MODEL_CATALOG_TTL_SECONDS", 300),
		},
		Keys: APIKeys{
			OpenAI:     getEnv("OPENAI_API_KEY", ""),
			XAI:        getEnv("XAI_API_KEY", ""),
			Google:     getEnv("GOOGLE_API_KEY", ""),
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
		},
		Events: EventConfig{
			CouncilTurnTopic: getEnv("COUNCIL_TURN_TOPIC_NAME", "COUNCIL_TURN_COMPLETED"),
		},
	}
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

func getEnvAsSlice(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
