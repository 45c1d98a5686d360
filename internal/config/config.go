package config

import (
	"os"
	"strconv"
	"strings"

	"pdf-assembler/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	LogLevel       string
	MaxUploadSize  int64
	SupabaseURL    string
	SupabaseKey    string
	StorageBucket  string
	AllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MaxUploadSize:  getEnvInt64OrDefault("MAX_UPLOAD_SIZE", 50*1024*1024), // 50MB default
		SupabaseURL:    getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:    getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket:  getEnvOrDefault("STORAGE_BUCKET", "documents"),
		AllowedOrigins: getEnvListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxUploadSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxUploadSize() int64 {
	return c.MaxUploadSize
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the storage bucket for saved PDFs
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
