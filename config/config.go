package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Serper    SerperConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// SerperConfig holds Serper.dev shopping search API configuration
type SerperConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Country  string `mapstructure:"country"`  // "gl" request parameter, e.g. "in"
	Language string `mapstructure:"language"` // "hl" request parameter, e.g. "en"
}

// AuthConfig holds bearer-token authentication configuration
type AuthConfig struct {
	Token       string `mapstructure:"token"`
	OwnerNumber string `mapstructure:"owner_number"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	SerperPerSecond float64 `mapstructure:"serper_per_second"`
	SerperBurst     int     `mapstructure:"serper_burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, and AutomaticEnv
	// alone does not register any. Keys without defaults must be bound
	// explicitly or env-only configuration silently drops them.
	v.MustBindEnv("serper.api_key")
	v.MustBindEnv("auth.token")
	v.MustBindEnv("auth.owner_number")

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	// Serper defaults
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.country", "in")
	v.SetDefault("serper.language", "en")

	// Rate limit defaults
	v.SetDefault("ratelimit.serper_per_second", 2.0)
	v.SetDefault("ratelimit.serper_burst", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Serper.APIKey == "" {
		return fmt.Errorf("Serper API key is required (set PRICELENS_SERPER_API_KEY)")
	}

	if config.Auth.Token == "" {
		return fmt.Errorf("auth token is required (set PRICELENS_AUTH_TOKEN)")
	}

	if config.Auth.OwnerNumber == "" {
		return fmt.Errorf("owner number is required (set PRICELENS_AUTH_OWNER_NUMBER)")
	}

	if config.RateLimit.SerperPerSecond <= 0 {
		return fmt.Errorf("serper rate limit must be positive, got: %f", config.RateLimit.SerperPerSecond)
	}

	return nil
}
