package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `yaml:"port"`
	Environment  string `yaml:"environment"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`

	CORSOrigins []string `yaml:"cors_origins"`

	// PixelsToMetres converts drawing units to metres.
	PixelsToMetres float64 `yaml:"pixels_to_metres"`
	RollWidth      float64 `yaml:"roll_width"`
	HistoryDepth   int     `yaml:"history_depth"`

	DBPath          string `yaml:"db_path"`
	AnalyzerURL     string `yaml:"analyzer_url"`
	AnalyzerTimeout int    `yaml:"analyzer_timeout"`
}

func defaults() Config {
	return Config{
		Port:            "3000",
		Environment:     "development",
		ReadTimeout:     10,
		WriteTimeout:    10,
		PixelsToMetres:  0.01,
		RollWidth:       3.66,
		HistoryDepth:    10,
		DBPath:          "data/db/estimator.db",
		AnalyzerURL:     "http://localhost:3001",
		AnalyzerTimeout: 120,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// ESTIMATOR_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("ESTIMATOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.CORSOrigins = getEnvAsList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.PixelsToMetres = getEnvAsFloat("PIXELS_TO_METRES", cfg.PixelsToMetres)
	cfg.RollWidth = getEnvAsFloat("ROLL_WIDTH", cfg.RollWidth)
	cfg.HistoryDepth = getEnvAsInt("HISTORY_DEPTH", cfg.HistoryDepth)
	cfg.DBPath = getEnv("ESTIMATOR_DB_PATH", cfg.DBPath)
	cfg.AnalyzerURL = getEnv("ANALYZER_URL", cfg.AnalyzerURL)
	cfg.AnalyzerTimeout = getEnvAsInt("ANALYZER_TIMEOUT", cfg.AnalyzerTimeout)

	return &cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvAsList reads a comma-separated list.
func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
