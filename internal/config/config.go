package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type UploadConfig struct {
	// MaxSizeMB bounds the multipart body accepted by the server.
	MaxSizeMB int
	// TTLMinutes is how long uploaded bytes stay available for re-parsing.
	TTLMinutes int
	// PreviewRows is the default row count for the preview endpoint.
	PreviewRows int
}

type AnalysisConfig struct {
	// PeakEngineEnabled is the capability flag for the peak-analysis engine.
	// When false the dashboard still parses, previews and plots the raw
	// signal, but peak detection is reported as unavailable.
	PeakEngineEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Upload: UploadConfig{
			MaxSizeMB:   getEnvAsInt("UPLOAD_MAX_SIZE_MB", 10),
			TTLMinutes:  getEnvAsInt("UPLOAD_TTL_MINUTES", 60),
			PreviewRows: getEnvAsInt("PREVIEW_ROWS", 10),
		},
		Analysis: AnalysisConfig{
			PeakEngineEnabled: getEnvAsBool("PEAK_ENGINE_ENABLED", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
