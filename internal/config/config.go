package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

type AppConfig struct {
	QueueDepth      int
	LogLevel        zapcore.Level
	KafkaBrokers    []string
	RejectionsTopic string
	DatabaseURL     string
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load(files ...string) (AppConfig, error) {
	_ = godotenv.Load(files...) //nolint:errcheck // .env is optional

	cfg := AppConfig{
		RejectionsTopic: getEnv("KAFKA_REJECTIONS_TOPIC", "transaction_rejected"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
	}

	depth, err := strconv.Atoi(getEnv("QUEUE_DEPTH", "4096"))
	if err != nil || depth <= 0 {
		return AppConfig{}, fmt.Errorf("config: QUEUE_DEPTH must be a positive integer, got %q", os.Getenv("QUEUE_DEPTH"))
	}
	cfg.QueueDepth = depth

	level, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
