package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string

	// Redis (rate limiting); empty address disables the limiter
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Sign-in codes
	OTPExpirationDur time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fintrack"),
		DBPassword: getEnv("DB_PASSWORD", "fintrack"),
		DBName:     getEnv("DB_NAME", "fintrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	if dbStr := getEnv("REDIS_DB", "0"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			log.Printf("Warning: invalid REDIS_DB value '%s', falling back to 0\n", dbStr)
			db = 0
		}
		config.RedisDB = db
	}

	// Parse sign-in code expiration
	otpStr := getEnv("OTP_EXPIRES_IN", "10m")
	otpDur, err := time.ParseDuration(otpStr)
	if err != nil {
		log.Printf("Warning: invalid OTP_EXPIRES_IN value '%s', falling back to 10m\n", otpStr)
		otpDur = 10 * time.Minute
	}
	config.OTPExpirationDur = otpDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
