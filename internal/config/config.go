package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"june-voice-backend/internal/googleapi"
)

type Config struct {
	Port          string
	OpenAIAPIKey  string
	AllowedOrigin string
	Model         string
	STTModel      string
	ElevenAPIKey  string
	ElevenVoiceID string
	ElevenModel   string
	// Assistant behaviour
	AssistantVoice   string
	UpstreamTimeout  time.Duration
	IntentPromptSpec string
	// Database
	DatabaseURL string
	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleTokenFile    string
	GoogleScopes       []string
	MigrationsDir      string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:               getEnvDefault("PORT", "8080"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		Model:              getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		STTModel:           getEnvDefault("OPENAI_STT_MODEL", "whisper-1"),
		ElevenAPIKey:       os.Getenv("ELEVEN_API_KEY"),
		ElevenVoiceID:      os.Getenv("ELEVEN_VOICE_ID"),
		ElevenModel:        getEnvDefault("ELEVEN_MODEL_ID", "eleven_multilingual_v2"),
		AssistantVoice:     getEnvDefault("ASSISTANT_VOICE", "female_1"),
		UpstreamTimeout:    getEnvDurationDefault("UPSTREAM_TIMEOUT", 10*time.Second),
		IntentPromptSpec:   getEnvDefault("INTENT_PROMPT_SPEC", "prompts/intent.yaml"),
		DatabaseURL:        os.Getenv("DB_URL"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnvDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/google/callback"),
		GoogleTokenFile:    getEnvDefault("GOOGLE_TOKEN_FILE", "data/google_token.json"),
		GoogleScopes:       getEnvListDefault("GOOGLE_OAUTH_SCOPES", googleapi.Scopes),
		MigrationsDir:      getEnvDefault("MIGRATIONS_DIR", "migrations"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; voice transcription and model routing will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvListDefault(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			return d
		}
		log.Printf("warning: invalid %s value %q, using %s", key, v, def)
	}
	return def
}
