package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendBaseURL string
	BackendAPIKey  string
	HTTPPort       string
	RequestTimeout int // seconds, applied to every backend call
	DatabasePath   string
	LogLevel       string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendAPIKey:  getEnv("BACKEND_API_KEY", ""),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 120),
		DatabasePath:   getEnv("DATABASE_PATH", "studio.db"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
