package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Stability StabilityConfig
	Upload    UploadConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StabilityConfig holds everything needed to talk to the hosted
// image-generation API. A missing APIKey is not fatal at startup;
// generation calls fail with a configuration error instead.
type StabilityConfig struct {
	APIKey  string
	BaseURL string
	Engine  string
	Timeout time.Duration
}

type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 120*time.Second),
		},
		Stability: StabilityConfig{
			APIKey:  getEnv("STABILITY_API_KEY", ""),
			BaseURL: getEnv("STABILITY_API_HOST", "https://api.stability.ai"),
			Engine:  getEnv("STABILITY_ENGINE", "stable-diffusion-xl-1024-v1-0"),
			Timeout: getDuration("STABILITY_TIMEOUT", 120*time.Second),
		},
		Upload: UploadConfig{
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024), // 10MB
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
