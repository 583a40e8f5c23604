package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Completion provider configuration.
	GeminiAPIKey     string  `mapstructure:"GEMINI_API_KEY"`
	DefaultModel     string  `mapstructure:"DEFAULT_MODEL"`
	FallbackModels   string  `mapstructure:"FALLBACK_MODELS"`
	MaxOutputTokens  int     `mapstructure:"MAX_OUTPUT_TOKENS"`
	Temperature      float64 `mapstructure:"TEMPERATURE"`
	StreamingEnabled bool    `mapstructure:"STREAMING_ENABLED"`

	// Redis configuration.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB      int    `mapstructure:"REDIS_SESSION_DB"`
	RedisConversationDB int    `mapstructure:"REDIS_CONVERSATION_DB"`
	SessionTTLMinutes   int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Durable store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Asset resolution.
	CDNBaseURL   string `mapstructure:"CDN_BASE_URL"`
	UseCDNAssets bool   `mapstructure:"USE_CDN_ASSETS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("DEFAULT_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("FALLBACK_MODELS", "models/gemini-1.5-flash,models/gemini-1.0-pro")
	viper.SetDefault("MAX_OUTPUT_TOKENS", 1024)
	viper.SetDefault("TEMPERATURE", 0.4)
	viper.SetDefault("STREAMING_ENABLED", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CONVERSATION_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("CDN_BASE_URL", "")
	viper.SetDefault("USE_CDN_ASSETS", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// ModelChain returns the ordered completion model chain: the default model
// followed by the configured fallbacks.
func ModelChain() []string {
	chain := []string{AppConfig.DefaultModel}
	for _, m := range strings.Split(AppConfig.FallbackModels, ",") {
		if m = strings.TrimSpace(m); m != "" && m != AppConfig.DefaultModel {
			chain = append(chain, m)
		}
	}
	return chain
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
