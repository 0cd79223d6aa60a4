package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Scan      ScanConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Type    string `mapstructure:"type"` // "memory" or "sqlite"
	DataDir string `mapstructure:"data_dir"`
}

// ScanConfig holds the simulated NFC timings
type ScanConfig struct {
	ReadDelay       time.Duration `mapstructure:"read_delay"`
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// SeedConfig controls the demo data generator. Value 0 seeds from the clock.
type SeedConfig struct {
	Value int64 `mapstructure:"value"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/smartmall/")

	// Environment variable settings
	v.SetEnvPrefix("SMARTMALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.data_dir", "./data")

	// Scan defaults
	v.SetDefault("scan.read_delay", "1500ms")
	v.SetDefault("scan.processing_delay", "2s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Seed defaults (0 seeds from the clock)
	v.SetDefault("seed.value", 0)
}

// loadEnvFile reads a .env file in the working directory into the process
// environment. Missing file is fine; existing variables are never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, strings.TrimSpace(value))
	}
	return scanner.Err()
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "sqlite" {
		return fmt.Errorf("store type must be 'memory' or 'sqlite', got: %s", config.Store.Type)
	}

	if config.Store.Type == "sqlite" && config.Store.DataDir == "" {
		return fmt.Errorf("data directory is required when store type is 'sqlite'")
	}

	if config.Scan.ReadDelay < 0 || config.Scan.ProcessingDelay < 0 {
		return fmt.Errorf("scan delays must not be negative")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
