package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the stream server.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	BufferFile     string
	PollInterval   time.Duration
	BroadcastLimit int // events per second per channel, 0 = unlimited
}

// Load reads server configuration from environment variables.
func Load() (*Config, error) {
	port := getEnv("PORT", "5000")
	dbURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	bufferFile := getEnv("BUFFER_FILE", "position.json")
	pollMs := getEnvInt("POLL_INTERVAL_MS", 10)
	broadcastLimit := getEnvInt("BROADCAST_LIMIT", 60)

	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	return &Config{
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       redisURL,
		BufferFile:     bufferFile,
		PollInterval:   time.Duration(pollMs) * time.Millisecond,
		BroadcastLimit: broadcastLimit,
	}, nil
}

// ViewerConfig holds configuration for the display clients.
type ViewerConfig struct {
	ServerURL      string
	ViewportWidth  float64
	ViewportHeight float64

	// Optional calibration overrides; nil keeps the page's built-in
	// constants.
	Window  *float64
	OffsetX *float64
	OffsetY *float64
}

// LoadViewer reads display-client configuration from environment variables.
func LoadViewer() *ViewerConfig {
	return &ViewerConfig{
		ServerURL:      getEnv("SERVER_URL", "http://localhost:5000"),
		ViewportWidth:  getEnvFloat("VIEWPORT_WIDTH", 1200),
		ViewportHeight: getEnvFloat("VIEWPORT_HEIGHT", 800),
		Window:         getEnvFloatOptional("TRACKING_WINDOW"),
		OffsetX:        getEnvFloatOptional("TRACKING_OFFSET_X"),
		OffsetY:        getEnvFloatOptional("TRACKING_OFFSET_Y"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvFloatOptional(key string) *float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return &f
		}
	}
	return nil
}
