// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	// Chat completion backend
	ChatAPIKey  string
	ChatBaseURL string
	ChatModel   string
	// ChatMaxTokens caps the reply length per completion.
	ChatMaxTokens int

	// Speech synthesis backend: "google" or "azure".
	TTSProvider       string
	GoogleTTSAPIKey   string
	AzureSpeechKey    string
	AzureSpeechRegion string

	// Conversation store backend: "memory" or "sqlite".
	StoreBackend string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "3000"),
		Environment:       env,
		ChatAPIKey:        getEnv("CHAT_API_KEY", ""),
		ChatBaseURL:       getEnv("CHAT_BASE_URL", ""),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ChatMaxTokens:     getEnvAsInt("CHAT_MAX_TOKENS", 1024),
		TTSProvider:       getEnv("TTS_PROVIDER", "google"),
		GoogleTTSAPIKey:   getEnv("GOOGLE_TTS_API_KEY", ""),
		AzureSpeechKey:    getEnv("AZURE_SPEECH_KEY", ""),
		AzureSpeechRegion: getEnv("AZURE_SPEECH_REGION", "eastus"),
		StoreBackend:      getEnv("STORE_BACKEND", "memory"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.ChatAPIKey == "" {
			missing = append(missing, "CHAT_API_KEY")
		}
		switch cfg.TTSProvider {
		case "google":
			if cfg.GoogleTTSAPIKey == "" {
				missing = append(missing, "GOOGLE_TTS_API_KEY")
			}
		case "azure":
			if cfg.AzureSpeechKey == "" {
				missing = append(missing, "AZURE_SPEECH_KEY")
			}
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
