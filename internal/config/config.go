// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rcliao/bmi-percentile/internal/lms"
)

// Config holds application configuration.
type Config struct {
	DBPath     string
	TablesDir  string
	MaleFile   string
	FemaleFile string
	LogLevel   string
	LogFormat  string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:     getEnv("BMI_DB", defaultDBPath()),
		TablesDir:  getEnv("BMI_TABLES_DIR", "./tables"),
		MaleFile:   getEnv("BMI_MALE_TABLE", lms.DefaultMaleFile),
		FemaleFile: getEnv("BMI_FEMALE_TABLE", lms.DefaultFemaleFile),
		LogLevel:   getEnv("BMI_LOG_LEVEL", "warn"),
		LogFormat:  getEnv("BMI_LOG_FORMAT", "console"),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "historial_imc.db"
	}
	return filepath.Join(home, ".bmi-percentile", "history.db")
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
