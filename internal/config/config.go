package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxWorkers   int

	// Database configuration
	DatabaseURL string

	// Auth configuration
	JWTSecret   string
	TokenExpiry time.Duration

	// Recognition configuration
	OCRLanguage string

	// Upload configuration
	MaxUploadSize int64

	// Storage configuration: S3-compatible bucket when SupabaseURL is
	// set, local disk otherwise
	SupabaseURL    string
	SupabaseBucket string
	SupabaseAPIKey string
	SupabaseRegion string
	UploadsDir     string

	// Logging configuration
	LogFormat string
	LogLevel  string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Get the executable directory
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
	}

	// Determine project root directory
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	// Load .env file if it exists
	if err := godotenv.Load(envPath); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading .env file. Using environment variables.")
		} else {
			log.Println("Loaded environment variables from current directory .env file")
		}
	} else {
		log.Printf("Loaded environment variables from %s", envPath)
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 60)) * time.Second,
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),

		// Database configuration
		DatabaseURL: os.Getenv("POSTGRES_DB_URL"),

		// Auth configuration
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiry: time.Duration(getEnvInt("TOKEN_EXPIRY_MINUTES", 60)) * time.Minute,

		// Recognition configuration
		OCRLanguage: getEnvString("OCR_LANGUAGE", "eng"),

		// Upload configuration
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5<<20)),

		// Storage configuration
		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseBucket: getEnvString("SUPABASE_BUCKET", "receipts"),
		SupabaseAPIKey: os.Getenv("SUPABASE_API_KEY"),
		SupabaseRegion: getEnvString("SUPABASE_REGION", "us-east-1"),
		UploadsDir:     getEnvString("UPLOADS_DIR", "uploads"),

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.DatabaseURL == "" {
		log.Println("Warning: No POSTGRES_DB_URL provided. Database operations will fail.")
	}

	if config.JWTSecret == "" {
		log.Println("Warning: No JWT_SECRET provided. Authentication will fail.")
	}

	if config.SupabaseURL == "" {
		log.Printf("No Supabase URL provided. Receipt files will be stored on local disk under %q.", config.UploadsDir)
	} else if config.SupabaseAPIKey == "" {
		log.Println("Warning: Supabase URL set without SUPABASE_API_KEY. Receipt uploads will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
