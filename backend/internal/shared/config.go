// ============================================================================
// backend/internal/shared/config.go
// Configuration management and environment variable helpers
// ============================================================================

package shared

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================================
// Configuration Structs
// ============================================================================

// Config holds the full server configuration
type Config struct {
	HTTPPort    string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error

	// Path to the JSON data file holding the gradebook state
	DataFile string

	// HTTP server timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Security SecurityConfig
	CORS     CORSConfig
}

// SecurityConfig holds role-token configuration
type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

// ============================================================================
// Configuration Loading
// ============================================================================

// LoadEnv loads environment variables from a .env file
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s file not found, using system environment variables", envFile)
		return err
	}

	log.Printf("Successfully loaded environment from %s", envFile)
	return nil
}

// LoadConfig loads the server configuration from the environment
func LoadConfig() (*Config, error) {
	config := &Config{
		HTTPPort:    GetEnv("HTTP_PORT", "8080"),
		Environment: GetEnv("ENVIRONMENT", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),

		DataFile: GetEnv("DATA_FILE", "data/data.json"),

		ReadTimeout:  GetDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: GetDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  GetDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	config.Security = SecurityConfig{
		JWTSecret: GetEnv("JWT_SECRET", "dev-secret-for-gradebook"),
		TokenTTL:  GetDurationEnv("TOKEN_TTL", 24*time.Hour),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   GetStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		AllowedMethods:   GetStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   GetStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
		AllowCredentials: GetBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           GetIntEnv("CORS_MAX_AGE", 300),
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	if IsProduction(config) && config.Security.JWTSecret == "dev-secret-for-gradebook" {
		return nil, fmt.Errorf("JWT_SECRET must be set explicitly in production")
	}

	return config, nil
}

// ValidateConfig validates the loaded configuration
func ValidateConfig(config *Config) error {
	if config.HTTPPort == "" {
		return fmt.Errorf("HTTP port is required")
	}

	if config.DataFile == "" {
		return fmt.Errorf("data file path is required")
	}

	if config.Security.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Security.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	return nil
}

// ============================================================================
// Environment Variable Helper Functions
// ============================================================================

// GetEnv retrieves an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv retrieves an integer environment variable or returns a default value
func GetIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetBoolEnv retrieves a boolean environment variable or returns a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetDurationEnv retrieves a duration environment variable or returns a default value
// Supports format like "30s", "5m", "1h"
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetStringSliceEnv retrieves a comma-separated string list or returns a default value
func GetStringSliceEnv(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, item := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

// ============================================================================
// Environment Checks
// ============================================================================

// IsDevelopment checks if running in development environment
func IsDevelopment(config *Config) bool {
	return config.Environment == "development"
}

// IsProduction checks if running in production environment
func IsProduction(config *Config) bool {
	return config.Environment == "production"
}

// ============================================================================
// Configuration Display (for debugging)
// ============================================================================

// PrintConfig prints configuration (sanitized) for debugging
func PrintConfig(config *Config) {
	log.Println("=== Server Configuration ===")
	log.Printf("HTTP Port: %s", config.HTTPPort)
	log.Printf("Environment: %s", config.Environment)
	log.Printf("Log Level: %s", config.LogLevel)
	log.Printf("Data File: %s", config.DataFile)
	log.Printf("Read Timeout: %v", config.ReadTimeout)
	log.Printf("Write Timeout: %v", config.WriteTimeout)
	log.Println("=== Security Configuration ===")
	log.Printf("Token TTL: %v", config.Security.TokenTTL)
	log.Println("=== CORS Configuration ===")
	log.Printf("Allowed Origins: %v", config.CORS.AllowedOrigins)
	log.Printf("Allowed Methods: %v", config.CORS.AllowedMethods)
	log.Printf("Allow Credentials: %t", config.CORS.AllowCredentials)
	log.Println("============================")
}
