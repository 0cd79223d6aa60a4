package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SMARTMALL_SERVER_PORT")
		os.Unsetenv("SMARTMALL_SERVER_ENVIRONMENT")
		os.Unsetenv("SMARTMALL_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("SMARTMALL_STORE_TYPE")
		os.Unsetenv("SMARTMALL_STORE_DATA_DIR")
		os.Unsetenv("SMARTMALL_SCAN_READ_DELAY")
		os.Unsetenv("SMARTMALL_SCAN_PROCESSING_DELAY")
		os.Unsetenv("SMARTMALL_RATELIMIT_PER_IP")
		os.Unsetenv("SMARTMALL_SEED_VALUE")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Store.Type != "memory" {
			t.Errorf("Store.Type = %s, want memory", cfg.Store.Type)
		}
		if cfg.Store.DataDir != "./data" {
			t.Errorf("Store.DataDir = %s, want ./data", cfg.Store.DataDir)
		}
		if cfg.Scan.ReadDelay != 1500*time.Millisecond {
			t.Errorf("Scan.ReadDelay = %v, want 1.5s", cfg.Scan.ReadDelay)
		}
		if cfg.Scan.ProcessingDelay != 2*time.Second {
			t.Errorf("Scan.ProcessingDelay = %v, want 2s", cfg.Scan.ProcessingDelay)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Seed.Value != 0 {
			t.Errorf("Seed.Value = %d, want 0", cfg.Seed.Value)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTMALL_SERVER_PORT", "9090")
		os.Setenv("SMARTMALL_SERVER_ENVIRONMENT", "production")
		os.Setenv("SMARTMALL_STORE_TYPE", "sqlite")
		os.Setenv("SMARTMALL_STORE_DATA_DIR", "/var/lib/smartmall")
		os.Setenv("SMARTMALL_SCAN_READ_DELAY", "10ms")
		os.Setenv("SMARTMALL_SCAN_PROCESSING_DELAY", "50ms")
		os.Setenv("SMARTMALL_RATELIMIT_PER_IP", "200")
		os.Setenv("SMARTMALL_SEED_VALUE", "42")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Store.Type != "sqlite" {
			t.Errorf("Store.Type = %s, want sqlite", cfg.Store.Type)
		}
		if cfg.Store.DataDir != "/var/lib/smartmall" {
			t.Errorf("Store.DataDir = %s, want /var/lib/smartmall", cfg.Store.DataDir)
		}
		if cfg.Scan.ReadDelay != 10*time.Millisecond {
			t.Errorf("Scan.ReadDelay = %v, want 10ms", cfg.Scan.ReadDelay)
		}
		if cfg.Scan.ProcessingDelay != 50*time.Millisecond {
			t.Errorf("Scan.ProcessingDelay = %v, want 50ms", cfg.Scan.ProcessingDelay)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Seed.Value != 42 {
			t.Errorf("Seed.Value = %d, want 42", cfg.Seed.Value)
		}
	})

	t.Run("fails validation for invalid store type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTMALL_STORE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid store type")
		}
	})

	t.Run("fails validation for negative scan delay", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTMALL_SCAN_READ_DELAY", "-1s")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for negative scan delay")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		// Create .env file
		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# Another comment
TEST_VAR_3=value3
`
		err := os.WriteFile(".env", []byte(envContent), 0644)
		if err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		// Clear any existing values
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")

		err = loadEnvFile()
		if err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_VAR_3") != "value3" {
			t.Errorf("TEST_VAR_3 = %s, want value3", os.Getenv("TEST_VAR_3"))
		}

		// Cleanup
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")
	})

	t.Run("skips empty lines and comments", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		// Create .env file with various formats
		envContent := `
# This is a comment
   # This is also a comment

TEST_SKIP_1=value1

TEST_SKIP_2=value2
# TEST_COMMENTED=should_not_load
`
		err := os.WriteFile(".env", []byte(envContent), 0644)
		if err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_SKIP_1")
		os.Unsetenv("TEST_SKIP_2")
		os.Unsetenv("TEST_COMMENTED")

		err = loadEnvFile()
		if err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_SKIP_1") != "value1" {
			t.Errorf("TEST_SKIP_1 not loaded correctly")
		}
		if os.Getenv("TEST_SKIP_2") != "value2" {
			t.Errorf("TEST_SKIP_2 not loaded correctly")
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}

		os.Unsetenv("TEST_SKIP_1")
		os.Unsetenv("TEST_SKIP_2")
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		// Set existing env var
		os.Setenv("TEST_OVERRIDE", "existing-value")

		// Create .env file that tries to override
		envContent := "TEST_OVERRIDE=new-value"
		err := os.WriteFile(".env", []byte(envContent), 0644)
		if err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		err = loadEnvFile()
		if err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		// Should still have original value
		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}

		os.Unsetenv("TEST_OVERRIDE")
	})
}

func TestValidate(t *testing.T) {
	t.Run("validates successfully with all required fields", func(t *testing.T) {
		cfg := &Config{
			Store: StoreConfig{
				Type:    "memory",
				DataDir: "./data",
			},
			RateLimit: RateLimitConfig{PerIP: 100},
		}

		err := validate(cfg)
		if err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for invalid store type", func(t *testing.T) {
		cfg := &Config{
			Store:     StoreConfig{Type: "redis"},
			RateLimit: RateLimitConfig{PerIP: 100},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for invalid store type")
		}
	})

	t.Run("validates sqlite store type with data dir", func(t *testing.T) {
		cfg := &Config{
			Store: StoreConfig{
				Type:    "sqlite",
				DataDir: "/var/lib/smartmall",
			},
			RateLimit: RateLimitConfig{PerIP: 100},
		}

		err := validate(cfg)
		if err != nil {
			t.Errorf("validate() error = %v, want nil for valid sqlite config", err)
		}
	})

	t.Run("fails for sqlite store without data dir", func(t *testing.T) {
		cfg := &Config{
			Store:     StoreConfig{Type: "sqlite"},
			RateLimit: RateLimitConfig{PerIP: 100},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for sqlite without data dir")
		}
	})

	t.Run("fails for non-positive rate limit", func(t *testing.T) {
		cfg := &Config{
			Store:     StoreConfig{Type: "memory"},
			RateLimit: RateLimitConfig{PerIP: 0},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for zero rate limit")
		}
	})
}
