package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort          string `mapstructure:"APP_PORT"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseName     string `mapstructure:"DATABASE_NAME"`
	Env              string `mapstructure:"ENV"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	RateLimitPerMin  int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	RateLimitBurst   int    `mapstructure:"RATE_LIMIT_BURST"`
	AdminJWTSecret   string `mapstructure:"ADMIN_JWT_SECRET"`
	PersonaFile      string `mapstructure:"PERSONA_FILE"`
	HealthCheckEvery string `mapstructure:"HEALTH_CHECK_EVERY"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisLedgerDB int           `mapstructure:"REDIS_LEDGER_DB"`
	LedgerTTL     time.Duration `mapstructure:"LEDGER_TTL"`
	RedisEnabled  bool          `mapstructure:"REDIS_ENABLED"`

	// Model backend.
	LLMProvider      string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey     string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string        `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey     string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel      string        `mapstructure:"OPENAI_MODEL"`
	ChatMaxTokens    int           `mapstructure:"CHAT_MAX_TOKENS"`
	ChatTemperature  float32       `mapstructure:"CHAT_TEMPERATURE"`
	ChatModelTimeout time.Duration `mapstructure:"CHAT_MODEL_TIMEOUT"`

	// Conversation handling.
	ChatHistoryLimit       int  `mapstructure:"CHAT_HISTORY_LIMIT"`
	ChatMaxMessageChars    int  `mapstructure:"CHAT_MAX_MESSAGE_CHARS"`
	ChatTransactionalTurns bool `mapstructure:"CHAT_TRANSACTIONAL_TURNS"`

	// Notification channels.
	WebhookURL    string        `mapstructure:"WEBHOOK_URL"`
	EmailAPIURL   string        `mapstructure:"EMAIL_API_URL"`
	EmailAPIKey   string        `mapstructure:"EMAIL_API_KEY"`
	EmailFrom     string        `mapstructure:"EMAIL_FROM"`
	EmailTo       string        `mapstructure:"EMAIL_TO"`
	NotifyTimeout time.Duration `mapstructure:"NOTIFY_TIMEOUT"`
}

var AppConfig Config

func LoadConfig() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// setDefaults registers a default for every key so AutomaticEnv can bind them
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "washdesk")
	v.SetDefault("RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("ADMIN_JWT_SECRET", "")
	v.SetDefault("PERSONA_FILE", "")
	v.SetDefault("HEALTH_CHECK_EVERY", "@every 1m")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LEDGER_DB", 0)
	v.SetDefault("LEDGER_TTL", 72*time.Hour)
	v.SetDefault("REDIS_ENABLED", true)

	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("CHAT_MAX_TOKENS", 512)
	v.SetDefault("CHAT_TEMPERATURE", 0.7)
	v.SetDefault("CHAT_MODEL_TIMEOUT", 30*time.Second)

	v.SetDefault("CHAT_HISTORY_LIMIT", 20)
	v.SetDefault("CHAT_MAX_MESSAGE_CHARS", 2000)
	v.SetDefault("CHAT_TRANSACTIONAL_TURNS", false)

	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("EMAIL_API_URL", "https://api.resend.com/emails")
	v.SetDefault("EMAIL_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("EMAIL_TO", "")
	v.SetDefault("NOTIFY_TIMEOUT", 10*time.Second)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
